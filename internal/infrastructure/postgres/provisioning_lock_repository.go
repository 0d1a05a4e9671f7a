package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/helpdesk-pro/internal/domain/repository"
)

// Asegura que ProvisioningLockRepo implementa el puerto.
var _ repository.ProvisioningLockRepository = (*ProvisioningLockRepo)(nil)

// ProvisioningLockRepo serializa el aprovisionamiento por (tenant, empresa)
// con una fila única: INSERT ... ON CONFLICT DO NOTHING decide quién entra a
// la sección crítica. Al completar, la fila queda como marcador; tras un fallo
// fatal se borra para permitir reintentos.
type ProvisioningLockRepo struct {
	db dbtx
}

// NewProvisioningLockRepository construye el adaptador.
func NewProvisioningLockRepository(db dbtx) *ProvisioningLockRepo {
	return &ProvisioningLockRepo{db: db}
}

// Acquire devuelve true si este caller ganó el lock (insertó la fila).
func (r *ProvisioningLockRepo) Acquire(ctx context.Context, tenantID, companyID string) (bool, error) {
	schema, err := schemaName(tenantID)
	if err != nil {
		return false, err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s.provisioning_locks (tenant_id, company_id)
		VALUES ($1, $2)
		ON CONFLICT (tenant_id, company_id) DO NOTHING`, schema)
	cmd, err := r.db.Exec(ctx, query, tenantID, companyID)
	if err != nil {
		return false, fmt.Errorf("adquirir lock: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// MarkCompleted deja la fila como marcador de aprovisionamiento terminado.
func (r *ProvisioningLockRepo) MarkCompleted(ctx context.Context, tenantID, companyID string) error {
	schema, err := schemaName(tenantID)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		UPDATE %s.provisioning_locks SET completed_at = now()
		WHERE tenant_id = $1 AND company_id = $2`, schema)
	if _, err := r.db.Exec(ctx, query, tenantID, companyID); err != nil {
		return fmt.Errorf("marcar lock completado: %w", err)
	}
	return nil
}

// Release borra el lock solo si no está completado (un marcador terminado no
// debe reabrirse).
func (r *ProvisioningLockRepo) Release(ctx context.Context, tenantID, companyID string) error {
	schema, err := schemaName(tenantID)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		DELETE FROM %s.provisioning_locks
		WHERE tenant_id = $1 AND company_id = $2 AND completed_at IS NULL`, schema)
	if _, err := r.db.Exec(ctx, query, tenantID, companyID); err != nil {
		return fmt.Errorf("liberar lock: %w", err)
	}
	return nil
}
