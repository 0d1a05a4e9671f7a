package provisioning

import (
	"context"

	"github.com/tu-usuario/helpdesk-pro/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de UNA transacción con repositorios atados a ella.
// El clonado de jerarquías es multi-pasada (categorías → subcategorías →
// acciones → opciones); envolverlo en una transacción lo hace atómico: o se
// copia la jerarquía completa o no se copia nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		hierRepo repository.HierarchyRepository,
		optionRepo repository.FieldOptionRepository,
	) error) error
}
