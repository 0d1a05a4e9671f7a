package repository

import (
	"context"

	"github.com/tu-usuario/helpdesk-pro/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company dentro del
// schema del tenant (DIP). La implementación vive en infrastructure.
type CompanyRepository interface {
	// InsertIfAbsent inserta con ON CONFLICT (tenant_id, id) DO NOTHING.
	// Devuelve true si la fila se escribió (false = ya existía).
	InsertIfAbsent(ctx context.Context, c *entity.Company) (bool, error)
	GetByID(ctx context.Context, tenantID, id string) (*entity.Company, error)
	Count(ctx context.Context, tenantID string) (int, error)
	CountActive(ctx context.Context, tenantID string) (int, error)
}
