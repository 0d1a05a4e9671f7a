package entity

import "time"

// Nombres de campo con opciones seleccionables (deben coincidir con el CHECK
// de la tabla ticket_field_options).
const (
	FieldStatus   = "status"
	FieldPriority = "priority"
	FieldImpact   = "impact"
	FieldUrgency  = "urgency"
)

// Tipos de estado para fieldName = status.
const (
	StatusTypeOpen     = "open"
	StatusTypeResolved = "resolved"
	StatusTypeClosed   = "closed"
)

// FieldOption es un valor seleccionable de un campo de ticket (ej. priority =
// high) con su metadata de presentación, scoped por empresa.
// Clave natural: (tenant_id, company_id, field_name, value).
// Invariante: por (tenant, empresa, campo) a lo sumo una fila con IsDefault.
type FieldOption struct {
	ID         string
	TenantID   string
	CompanyID  string
	FieldName  string // ver constantes Field*
	Value      string
	Label      string
	Color      string
	SortOrder  int
	Active     bool
	IsDefault  bool
	StatusType string // solo para status: open, resolved, closed
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
