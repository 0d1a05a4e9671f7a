package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Un tenant cuyo schema todavía no existe debe contar CERO filas, no fallar:
// la consulta de estado corre en cada alta de tenant, antes de EnsureTables.
// ──────────────────────────────────────────────────────────────────────────────

const countTestTenantID = "550e8400-e29b-41d4-a716-446655440000"

// errRow implementa pgx.Row devolviendo siempre el mismo error en Scan.
type errRow struct{ err error }

func (r errRow) Scan(dest ...any) error { return r.err }

// errDB implementa dbtx propagando err en toda operación, como haría un pool
// contra un schema inexistente.
type errDB struct{ err error }

func (d errDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, d.err
}

func (d errDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, d.err
}

func (d errDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return errRow{d.err}
}

// Caso 1: 42P01 (undefined_table) y 3F000 (invalid_schema_name) en los conteos
// equivalen a cero filas.
func TestCounts_SchemaInexistenteEsCero(t *testing.T) {
	ctx := context.Background()
	for _, code := range []string{"42P01", "3F000"} {
		db := errDB{err: &pgconn.PgError{Code: code, Message: "does not exist"}}

		n, err := NewCompanyRepository(db).Count(ctx, countTestTenantID)
		require.NoError(t, err, "SQLSTATE %s no debe propagarse en Count de empresas", code)
		assert.Zero(t, n)

		n, err = NewCompanyRepository(db).CountActive(ctx, countTestTenantID)
		require.NoError(t, err, "SQLSTATE %s no debe propagarse en CountActive", code)
		assert.Zero(t, n)

		n, err = NewFieldOptionRepository(db).Count(ctx, countTestTenantID)
		require.NoError(t, err, "SQLSTATE %s no debe propagarse en Count de opciones", code)
		assert.Zero(t, n)

		n, err = NewFieldOptionRepository(db).CountByCompany(ctx, countTestTenantID, "c-1")
		require.NoError(t, err, "SQLSTATE %s no debe propagarse en CountByCompany", code)
		assert.Zero(t, n)

		n, err = NewHierarchyRepository(db).CountCategories(ctx, countTestTenantID)
		require.NoError(t, err, "SQLSTATE %s no debe propagarse en CountCategories", code)
		assert.Zero(t, n)
	}
}

// Caso 2: cualquier otro error de base de datos sigue propagando.
func TestCounts_OtrosErroresPropagan(t *testing.T) {
	ctx := context.Background()
	db := errDB{err: &pgconn.PgError{Code: "53300", Message: "too many connections"}}

	_, err := NewCompanyRepository(db).Count(ctx, countTestTenantID)
	require.Error(t, err, "un error ajeno a la deriva de schema debe propagarse")
	assert.Contains(t, err.Error(), "count companies")

	_, err = NewHierarchyRepository(db).CountCategories(ctx, countTestTenantID)
	require.Error(t, err)
}
