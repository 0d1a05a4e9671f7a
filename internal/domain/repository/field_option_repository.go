package repository

import (
	"context"

	"github.com/tu-usuario/helpdesk-pro/internal/domain/entity"
)

// FieldOptionRepository define el puerto de persistencia para las opciones de
// campo (status/priority/impact/urgency) por empresa.
type FieldOptionRepository interface {
	// Upsert escribe con ON CONFLICT (clave natural) DO UPDATE: en reaplicación
	// ganan los valores de la plantilla.
	Upsert(ctx context.Context, o *entity.FieldOption) error
	// InsertIfAbsent escribe con DO NOTHING: el set de respaldo nunca pisa
	// valores existentes. Devuelve true si la fila se escribió.
	InsertIfAbsent(ctx context.Context, o *entity.FieldOption) (bool, error)

	ListByCompany(ctx context.Context, tenantID, companyID string) ([]*entity.FieldOption, error)
	CountByCompany(ctx context.Context, tenantID, companyID string) (int, error)
	Count(ctx context.Context, tenantID string) (int, error)
}
