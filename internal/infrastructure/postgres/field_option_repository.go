package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/helpdesk-pro/internal/domain/entity"
	"github.com/tu-usuario/helpdesk-pro/internal/domain/repository"
)

// Asegura que FieldOptionRepo implementa repository.FieldOptionRepository.
var _ repository.FieldOptionRepository = (*FieldOptionRepo)(nil)

// FieldOptionRepo persiste las opciones de campo de tickets por empresa.
// La tabla ticket_field_options siempre tiene company_id (no es una columna
// opcional), así que aquí no entran SchemaCapabilities.
type FieldOptionRepo struct {
	db dbtx
}

// NewFieldOptionRepository construye el adaptador.
func NewFieldOptionRepository(db dbtx) *FieldOptionRepo {
	return &FieldOptionRepo{db: db}
}

// Upsert escribe con DO UPDATE sobre la clave natural: en reaplicación ganan
// los valores de la plantilla.
func (r *FieldOptionRepo) Upsert(ctx context.Context, o *entity.FieldOption) error {
	schema, err := schemaName(o.TenantID)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s.ticket_field_options (
			id, tenant_id, company_id, field_name, value, label, color,
			sort_order, active, is_default, status_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
		ON CONFLICT (tenant_id, company_id, field_name, value) DO UPDATE SET
			label       = EXCLUDED.label,
			color       = EXCLUDED.color,
			sort_order  = EXCLUDED.sort_order,
			active      = EXCLUDED.active,
			is_default  = EXCLUDED.is_default,
			status_type = EXCLUDED.status_type,
			updated_at  = now()`, schema)
	if _, err := r.db.Exec(ctx, query,
		o.ID, o.TenantID, o.CompanyID, o.FieldName, o.Value, o.Label, o.Color,
		o.SortOrder, o.Active, o.IsDefault, o.StatusType,
	); err != nil {
		return fmt.Errorf("upsert opción de campo: %w", err)
	}
	return nil
}

// InsertIfAbsent escribe con DO NOTHING: el set de respaldo nunca pisa una
// opción existente. Devuelve true si la fila se escribió.
func (r *FieldOptionRepo) InsertIfAbsent(ctx context.Context, o *entity.FieldOption) (bool, error) {
	schema, err := schemaName(o.TenantID)
	if err != nil {
		return false, err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s.ticket_field_options (
			id, tenant_id, company_id, field_name, value, label, color,
			sort_order, active, is_default, status_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
		ON CONFLICT (tenant_id, company_id, field_name, value) DO NOTHING`, schema)
	cmd, err := r.db.Exec(ctx, query,
		o.ID, o.TenantID, o.CompanyID, o.FieldName, o.Value, o.Label, o.Color,
		o.SortOrder, o.Active, o.IsDefault, o.StatusType,
	)
	if err != nil {
		return false, fmt.Errorf("insert opción de campo: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// ListByCompany lee las opciones de una empresa ordenadas por campo y orden.
func (r *FieldOptionRepo) ListByCompany(ctx context.Context, tenantID, companyID string) ([]*entity.FieldOption, error) {
	schema, err := schemaName(tenantID)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT id, tenant_id, company_id, field_name, value, label, color,
		       sort_order, active, is_default, status_type, created_at, updated_at
		FROM %s.ticket_field_options
		WHERE tenant_id = $1 AND company_id = $2
		ORDER BY field_name, sort_order`, schema)
	rows, err := r.db.Query(ctx, query, tenantID, companyID)
	if err != nil {
		return nil, fmt.Errorf("list opciones: %w", err)
	}
	defer rows.Close()

	var list []*entity.FieldOption
	for rows.Next() {
		var o entity.FieldOption
		if err := rows.Scan(
			&o.ID, &o.TenantID, &o.CompanyID, &o.FieldName, &o.Value, &o.Label, &o.Color,
			&o.SortOrder, &o.Active, &o.IsDefault, &o.StatusType, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan opción: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// CountByCompany cuenta opciones de una empresa.
func (r *FieldOptionRepo) CountByCompany(ctx context.Context, tenantID, companyID string) (int, error) {
	schema, err := schemaName(tenantID)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf(`SELECT count(*) FROM %s.ticket_field_options WHERE tenant_id = $1 AND company_id = $2`, schema)
	var n int
	if err := r.db.QueryRow(ctx, query, tenantID, companyID).Scan(&n); err != nil {
		if isMissingRelation(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("count opciones por empresa: %w", err)
	}
	return n, nil
}

// Count cuenta opciones del tenant (heurística IsTemplateApplied).
func (r *FieldOptionRepo) Count(ctx context.Context, tenantID string) (int, error) {
	schema, err := schemaName(tenantID)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf(`SELECT count(*) FROM %s.ticket_field_options WHERE tenant_id = $1`, schema)
	var n int
	if err := r.db.QueryRow(ctx, query, tenantID).Scan(&n); err != nil {
		// Tenant sin schema todavía: cero opciones, no un fallo.
		if isMissingRelation(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("count opciones: %w", err)
	}
	return n, nil
}
