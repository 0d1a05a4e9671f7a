package template

// Definition es la plantilla estática y versionada con la que se aprovisiona
// un tenant nuevo: empresa por defecto, jerarquía de clasificación de tickets
// (Categoría → Subcategoría → Acción) y sets de opciones de campo.
//
// Las subcategorías referencian a su categoría por NOMBRE y las acciones a su
// subcategoría por NOMBRE: la plantilla no tiene IDs estables, el resolver de
// dos pasadas (resolver.go) los genera al aplicarla.
//
// La plantilla se pasa explícitamente a cada operación de aprovisionamiento;
// no hay singleton mutable de configuración.
type Definition struct {
	Version       string
	Company       CompanyTemplate
	Categories    []CategoryTemplate
	Subcategories []SubcategoryTemplate
	Actions       []ActionTemplate
	FieldOptions  []FieldOptionTemplate
}

// Clone devuelve una copia independiente de la definición (slices incluidos),
// para aplicar overrides sin mutar la plantilla base del proceso.
func (d *Definition) Clone() *Definition {
	out := *d
	out.Categories = append([]CategoryTemplate(nil), d.Categories...)
	out.Subcategories = append([]SubcategoryTemplate(nil), d.Subcategories...)
	out.Actions = append([]ActionTemplate(nil), d.Actions...)
	out.FieldOptions = append([]FieldOptionTemplate(nil), d.FieldOptions...)
	return &out
}

// CompanyTemplate describe la empresa por defecto del tenant.
type CompanyTemplate struct {
	Name             string
	DisplayName      string
	Description      string
	Industry         string
	Size             string
	Email            string
	Phone            string
	Website          string
	SubscriptionTier string
}

// CategoryTemplate nivel 1 de la jerarquía.
type CategoryTemplate struct {
	Name        string
	Description string
	Color       string
	Icon        string
	SortOrder   int
}

// SubcategoryTemplate nivel 2; CategoryName referencia por nombre.
type SubcategoryTemplate struct {
	CategoryName string
	Name         string
	Description  string
	Color        string
	Icon         string
	SortOrder    int
}

// ActionTemplate nivel 3 (hoja); SubcategoryName referencia por nombre.
type ActionTemplate struct {
	SubcategoryName      string
	Name                 string
	Description          string
	EstimatedTimeMinutes int
	ActionType           string
	SortOrder            int
}

// FieldOptionTemplate es un valor seleccionable de status/priority/impact/urgency.
type FieldOptionTemplate struct {
	FieldName  string
	Value      string
	Label      string
	Color      string
	SortOrder  int
	IsDefault  bool
	StatusType string // solo para status
}
