package entity

import "time"

// DefaultCompanyID es el ID fijo de "la" empresa por defecto que se crea al
// aprovisionar un tenant nuevo. Es una convención intencional: cada tenant vive
// en su propio schema, así que el mismo UUID nunca colisiona entre tenants, y
// dentro de un tenant el upsert por clave natural hace la reutilización
// idempotente. No generar este ID: los callers externos dependen de él.
const DefaultCompanyID = "00000000-0000-0000-0000-000000000001"

// Company representa una empresa dentro del schema de un tenant.
// El motor de plantillas la crea una sola vez; su gestión posterior
// pertenece a la aplicación general, no a este subsistema.
type Company struct {
	ID               string
	TenantID         string
	Name             string
	DisplayName      string
	Description      string
	Industry         string
	Size             string // small, medium, large, enterprise
	Email            string
	Phone            string
	Website          string
	SubscriptionTier string // basic, professional, enterprise
	Status           string // active, suspended, inactive
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
