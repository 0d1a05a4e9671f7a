package entity

import "time"

// Category es el primer nivel de la jerarquía de clasificación de tickets.
// Clave natural: (tenant_id, company_id, name).
type Category struct {
	ID          string
	TenantID    string
	CompanyID   string // puede ir vacío si el schema del tenant no tiene la columna
	Name        string
	Description string
	Color       string
	Icon        string
	Active      bool
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Subcategory es el segundo nivel; pertenece a una Category de la MISMA empresa.
// Clave natural: (tenant_id, company_id, category_id, name).
type Subcategory struct {
	ID          string
	TenantID    string
	CompanyID   string
	CategoryID  string
	Name        string
	Description string
	Color       string
	Icon        string
	Active      bool
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Action es la hoja de la jerarquía: la acción concreta que resuelve el ticket.
// Clave natural: (tenant_id, company_id, subcategory_id, name).
type Action struct {
	ID                   string
	TenantID             string
	CompanyID            string
	SubcategoryID        string
	Name                 string
	Description          string
	EstimatedTimeMinutes int
	Color                string
	Icon                 string
	Active               bool
	SortOrder            int
	ActionType           string // remota, presencial, documental
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// SchemaCapabilities describe qué columnas opcionales existen en el schema del
// tenant. Se calcula una sola vez por tenant (information_schema) y se pasa
// explícitamente a los writers para no repetir introspección en cada insert.
type SchemaCapabilities struct {
	CategoriesHaveCompanyID    bool
	SubcategoriesHaveCompanyID bool
	ActionsHaveCompanyID       bool
}
