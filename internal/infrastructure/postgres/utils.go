package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tu-usuario/helpdesk-pro/internal/domain"
)

// dbtx es el subconjunto de pgx que usan los repositorios; lo satisfacen
// *pgxpool.Pool y pgx.Tx, así que el mismo repo sirve dentro y fuera de una
// transacción.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// schemaName deriva el nombre del schema del tenant: tenant_<uuid con '-'
// reemplazado por '_'>. Validar el UUID primero hace seguro interpolar el
// identificador en el SQL (no hay placeholders para nombres de schema).
func schemaName(tenantID string) (string, error) {
	id, err := uuid.Parse(tenantID)
	if err != nil {
		return "", domain.ErrInvalidTenantID
	}
	return "tenant_" + strings.ReplaceAll(id.String(), "-", "_"), nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// isMissingRelation detecta 42P01 undefined_table y 3F000 invalid_schema_name:
// el schema del tenant (o una de sus tablas) todavía no existe. En los conteos
// de estado equivale a "cero filas", no a un fallo.
func isMissingRelation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42P01" || pgErr.Code == "3F000"
	}
	return false
}

// isAlreadyExists detecta los errores de deriva "la relación/el objeto ya
// existe con otra forma" al recrear DDL: 42P07 duplicate_table, 42710
// duplicate_object, 42701 duplicate_column. Se registran y no son fatales.
func isAlreadyExists(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42P07", "42710", "42701":
			return true
		}
	}
	return false
}

// isUndefinedColumn detecta 42703 (columna inexistente): schema de tenant
// anterior a la columna opcional.
func isUndefinedColumn(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42703" // undefined_column
	}
	return false
}
