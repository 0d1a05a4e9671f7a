package repository

import (
	"context"

	"github.com/tu-usuario/helpdesk-pro/internal/domain/entity"
)

// SchemaRepository garantiza la forma del schema SQL del tenant.
type SchemaRepository interface {
	// EnsureTables crea el schema del tenant y las cinco tablas del motor si
	// faltan (CREATE ... IF NOT EXISTS). Errores de tipo "ya existe con otra
	// forma" se registran y no son fatales; el resto propaga.
	EnsureTables(ctx context.Context, tenantID string) error
	// Capabilities detecta una sola vez qué columnas opcionales existen en el
	// schema del tenant (information_schema.columns).
	Capabilities(ctx context.Context, tenantID string) (entity.SchemaCapabilities, error)
}

// ProvisioningLockRepository serializa el aprovisionamiento por (tenant, empresa)
// mediante una fila única adquirida con INSERT ... ON CONFLICT DO NOTHING.
type ProvisioningLockRepository interface {
	// Acquire devuelve false si otro caller tiene (o completó) el lock.
	Acquire(ctx context.Context, tenantID, companyID string) (bool, error)
	// MarkCompleted deja la fila como marcador de aprovisionamiento terminado.
	MarkCompleted(ctx context.Context, tenantID, companyID string) error
	// Release libera el lock tras un fallo fatal para permitir reintentos.
	Release(ctx context.Context, tenantID, companyID string) error
}
