package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/helpdesk-pro/internal/domain/entity"
	"github.com/tu-usuario/helpdesk-pro/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre el schema del
// tenant en PostgreSQL.
type CompanyRepo struct {
	db dbtx
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(db dbtx) *CompanyRepo {
	return &CompanyRepo{db: db}
}

// InsertIfAbsent persiste la empresa con ON CONFLICT (tenant_id, id) DO
// NOTHING: (tenant_id, id) es clave primaria y la empresa nunca se duplica.
// Devuelve true si la fila se escribió.
func (r *CompanyRepo) InsertIfAbsent(ctx context.Context, c *entity.Company) (bool, error) {
	schema, err := schemaName(c.TenantID)
	if err != nil {
		return false, err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s.companies (
			id, tenant_id, name, display_name, description, industry, size,
			email, phone, website, subscription_tier, status, is_active,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (tenant_id, id) DO NOTHING`, schema)
	cmd, err := r.db.Exec(ctx, query,
		c.ID, c.TenantID, c.Name, c.DisplayName, c.Description, c.Industry, c.Size,
		c.Email, c.Phone, c.Website, c.SubscriptionTier, c.Status, c.IsActive,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert company: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// GetByID obtiene una empresa por ID. Devuelve nil, nil si no existe.
func (r *CompanyRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Company, error) {
	schema, err := schemaName(tenantID)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT id, tenant_id, name, display_name, description, industry, size,
		       email, phone, website, subscription_tier, status, is_active,
		       created_at, updated_at
		FROM %s.companies WHERE tenant_id = $1 AND id = $2`, schema)
	var c entity.Company
	err = r.db.QueryRow(ctx, query, tenantID, id).Scan(
		&c.ID, &c.TenantID, &c.Name, &c.DisplayName, &c.Description, &c.Industry, &c.Size,
		&c.Email, &c.Phone, &c.Website, &c.SubscriptionTier, &c.Status, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// Count cuenta las empresas del tenant.
func (r *CompanyRepo) Count(ctx context.Context, tenantID string) (int, error) {
	return r.count(ctx, tenantID, false)
}

// CountActive cuenta las empresas activas del tenant (gating de primera empresa).
func (r *CompanyRepo) CountActive(ctx context.Context, tenantID string) (int, error) {
	return r.count(ctx, tenantID, true)
}

func (r *CompanyRepo) count(ctx context.Context, tenantID string, onlyActive bool) (int, error) {
	schema, err := schemaName(tenantID)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf(`SELECT count(*) FROM %s.companies WHERE tenant_id = $1`, schema)
	if onlyActive {
		query += ` AND is_active = true`
	}
	var n int
	if err := r.db.QueryRow(ctx, query, tenantID).Scan(&n); err != nil {
		// Tenant sin schema todavía: cero empresas, no un fallo.
		if isMissingRelation(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("count companies: %w", err)
	}
	return n, nil
}
