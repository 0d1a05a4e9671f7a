package repository

import (
	"context"

	"github.com/tu-usuario/helpdesk-pro/internal/domain/entity"
)

// HierarchyRepository define el puerto de persistencia para la jerarquía
// Categoría → Subcategoría → Acción de un tenant.
//
// Lecturas y escrituras reciben las SchemaCapabilities del tenant: si el
// schema no tiene la columna opcional company_id (deriva entre versiones de
// schema), la query la omite y la fila queda scoped solo por tenant_id.
type HierarchyRepository interface {
	// Inserts idempotentes por clave natural (ON CONFLICT DO NOTHING).
	// Devuelven true si la fila se escribió.
	InsertCategory(ctx context.Context, caps entity.SchemaCapabilities, c *entity.Category) (bool, error)
	InsertSubcategory(ctx context.Context, caps entity.SchemaCapabilities, s *entity.Subcategory) (bool, error)
	InsertAction(ctx context.Context, caps entity.SchemaCapabilities, a *entity.Action) (bool, error)

	// Lecturas scoped por empresa origen (clonado).
	ListCategoriesByCompany(ctx context.Context, caps entity.SchemaCapabilities, tenantID, companyID string) ([]*entity.Category, error)
	ListSubcategoriesByCompany(ctx context.Context, caps entity.SchemaCapabilities, tenantID, companyID string) ([]*entity.Subcategory, error)
	ListActionsByCompany(ctx context.Context, caps entity.SchemaCapabilities, tenantID, companyID string) ([]*entity.Action, error)

	// Búsquedas por clave natural + updates de campos mutables (clonado:
	// update-or-insert en destino). Devuelven nil, nil si no hay fila.
	GetCategoryByName(ctx context.Context, caps entity.SchemaCapabilities, tenantID, companyID, name string) (*entity.Category, error)
	UpdateCategory(ctx context.Context, c *entity.Category) error
	GetSubcategoryByName(ctx context.Context, caps entity.SchemaCapabilities, tenantID, companyID, categoryID, name string) (*entity.Subcategory, error)
	UpdateSubcategory(ctx context.Context, s *entity.Subcategory) error
	GetActionByName(ctx context.Context, caps entity.SchemaCapabilities, tenantID, companyID, subcategoryID, name string) (*entity.Action, error)
	UpdateAction(ctx context.Context, a *entity.Action) error

	CountCategories(ctx context.Context, tenantID string) (int, error)
}
