package template

import (
	"time"

	"github.com/tu-usuario/helpdesk-pro/internal/domain/entity"
)

// SkippedEntity registra una entidad de la plantilla que no pudo enlazarse a
// su padre por nombre. No es un error fatal: indica inconsistencia de datos en
// la plantilla y la operación continúa con el resto.
type SkippedEntity struct {
	Kind       string // subcategory | action
	Name       string
	ParentName string
}

// ResolvedHierarchy es el plan de escritura listo para insertar: entidades con
// IDs generados y referencias padre→hijo ya resueltas.
type ResolvedHierarchy struct {
	Categories    []*entity.Category
	Subcategories []*entity.Subcategory
	Actions       []*entity.Action
	Skipped       []SkippedEntity
}

// Resolve convierte la plantilla en entidades insertables en dos pasadas:
//
//  1. categorías → genera IDs y construye el mapa nombre→id;
//  2. subcategorías → resuelven su categoría por nombre contra ese mapa, y
//     construyen el segundo mapa nombre→id que consumen las acciones.
//
// Una subcategoría o acción cuyo padre no existe por nombre se salta y queda
// registrada en Skipped; el resto de la jerarquía se resuelve igual.
//
// Es una función pura: la generación de IDs se inyecta (newID) y no toca SQL,
// así que se puede probar sin base de datos.
func Resolve(def *Definition, tenantID, companyID string, newID func() string, now time.Time) *ResolvedHierarchy {
	out := &ResolvedHierarchy{}

	categoryIDByName := make(map[string]string, len(def.Categories))
	for _, ct := range def.Categories {
		id := newID()
		categoryIDByName[ct.Name] = id
		out.Categories = append(out.Categories, &entity.Category{
			ID:          id,
			TenantID:    tenantID,
			CompanyID:   companyID,
			Name:        ct.Name,
			Description: ct.Description,
			Color:       ct.Color,
			Icon:        ct.Icon,
			Active:      true,
			SortOrder:   ct.SortOrder,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	subcategoryIDByName := make(map[string]string, len(def.Subcategories))
	for _, st := range def.Subcategories {
		categoryID, ok := categoryIDByName[st.CategoryName]
		if !ok {
			out.Skipped = append(out.Skipped, SkippedEntity{Kind: "subcategory", Name: st.Name, ParentName: st.CategoryName})
			continue
		}
		id := newID()
		subcategoryIDByName[st.Name] = id
		out.Subcategories = append(out.Subcategories, &entity.Subcategory{
			ID:          id,
			TenantID:    tenantID,
			CompanyID:   companyID,
			CategoryID:  categoryID,
			Name:        st.Name,
			Description: st.Description,
			Color:       st.Color,
			Icon:        st.Icon,
			Active:      true,
			SortOrder:   st.SortOrder,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	for _, at := range def.Actions {
		subcategoryID, ok := subcategoryIDByName[at.SubcategoryName]
		if !ok {
			out.Skipped = append(out.Skipped, SkippedEntity{Kind: "action", Name: at.Name, ParentName: at.SubcategoryName})
			continue
		}
		out.Actions = append(out.Actions, &entity.Action{
			ID:                   newID(),
			TenantID:             tenantID,
			CompanyID:            companyID,
			SubcategoryID:        subcategoryID,
			Name:                 at.Name,
			Description:          at.Description,
			EstimatedTimeMinutes: at.EstimatedTimeMinutes,
			Active:               true,
			SortOrder:            at.SortOrder,
			ActionType:           at.ActionType,
			CreatedAt:            now,
			UpdatedAt:            now,
		})
	}

	return out
}

// FieldOptionEntities materializa opciones de plantilla como entidades para un
// (tenant, empresa) dados.
func FieldOptionEntities(opts []FieldOptionTemplate, tenantID, companyID string, newID func() string, now time.Time) []*entity.FieldOption {
	out := make([]*entity.FieldOption, 0, len(opts))
	for _, ot := range opts {
		out = append(out, &entity.FieldOption{
			ID:         newID(),
			TenantID:   tenantID,
			CompanyID:  companyID,
			FieldName:  ot.FieldName,
			Value:      ot.Value,
			Label:      ot.Label,
			Color:      ot.Color,
			SortOrder:  ot.SortOrder,
			Active:     true,
			IsDefault:  ot.IsDefault,
			StatusType: ot.StatusType,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	return out
}
