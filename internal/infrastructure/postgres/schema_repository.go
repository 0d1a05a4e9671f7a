package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/helpdesk-pro/internal/domain/entity"
	"github.com/tu-usuario/helpdesk-pro/internal/domain/repository"
	"github.com/tu-usuario/helpdesk-pro/pkg/logger"
)

// Asegura que SchemaRepo implementa repository.SchemaRepository.
var _ repository.SchemaRepository = (*SchemaRepo)(nil)

// SchemaRepo garantiza la forma del schema SQL del tenant: crea el schema y
// las tablas del motor si faltan y detecta las columnas opcionales presentes.
type SchemaRepo struct {
	db  dbtx
	log *logger.Logger
}

// NewSchemaRepository construye el adaptador.
func NewSchemaRepository(db dbtx, log *logger.Logger) *SchemaRepo {
	return &SchemaRepo{db: db, log: log}
}

// EnsureTables ejecuta el DDL idempotente del tenant. Los errores de tipo "ya
// existe con otra forma" (deriva entre versiones de schema) se registran y la
// operación continúa; cualquier otro error propaga.
func (r *SchemaRepo) EnsureTables(ctx context.Context, tenantID string) error {
	schema, err := schemaName(tenantID)
	if err != nil {
		return err
	}
	for _, stmt := range tenantDDL(schema) {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			if isAlreadyExists(err) {
				r.log.Warn().Str("tenant_id", tenantID).Err(err).
					Msg("objeto ya existente con otra forma; se continúa")
				continue
			}
			return fmt.Errorf("ddl del tenant: %w", err)
		}
	}
	return nil
}

// Capabilities consulta information_schema.columns UNA vez y devuelve qué
// tablas de jerarquía tienen la columna opcional company_id. Los writers
// reciben este valor y no repiten introspección.
func (r *SchemaRepo) Capabilities(ctx context.Context, tenantID string) (entity.SchemaCapabilities, error) {
	schema, err := schemaName(tenantID)
	if err != nil {
		return entity.SchemaCapabilities{}, err
	}
	const query = `
		SELECT table_name
		  FROM information_schema.columns
		 WHERE table_schema = $1
		   AND column_name  = 'company_id'
		   AND table_name   = ANY($2)`
	rows, err := r.db.Query(ctx, query, schema,
		[]string{"ticket_categories", "ticket_subcategories", "ticket_actions"})
	if err != nil {
		return entity.SchemaCapabilities{}, fmt.Errorf("introspección de columnas: %w", err)
	}
	defer rows.Close()

	var caps entity.SchemaCapabilities
	for rows.Next() {
		var table string
		if err := rows.Scan(&table); err != nil {
			return entity.SchemaCapabilities{}, fmt.Errorf("scan columna: %w", err)
		}
		switch table {
		case "ticket_categories":
			caps.CategoriesHaveCompanyID = true
		case "ticket_subcategories":
			caps.SubcategoriesHaveCompanyID = true
		case "ticket_actions":
			caps.ActionsHaveCompanyID = true
		}
	}
	return caps, rows.Err()
}

// tenantDDL devuelve las sentencias idempotentes del schema del tenant, en
// orden de dependencia (las FKs con ON DELETE CASCADE exigen crear primero a
// los padres).
func tenantDDL(schema string) []string {
	return []string{
		fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, schema),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.companies (
				id                UUID NOT NULL,
				tenant_id         UUID NOT NULL,
				name              TEXT NOT NULL,
				display_name      TEXT NOT NULL DEFAULT '',
				description       TEXT NOT NULL DEFAULT '',
				industry          TEXT NOT NULL DEFAULT '',
				size              TEXT NOT NULL DEFAULT '',
				email             TEXT NOT NULL DEFAULT '',
				phone             TEXT NOT NULL DEFAULT '',
				website           TEXT NOT NULL DEFAULT '',
				subscription_tier TEXT NOT NULL DEFAULT 'basic',
				status            TEXT NOT NULL DEFAULT 'active',
				is_active         BOOLEAN NOT NULL DEFAULT true,
				created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
				PRIMARY KEY (tenant_id, id)
			)`, schema),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.ticket_categories (
				id          UUID PRIMARY KEY,
				tenant_id   UUID NOT NULL,
				company_id  UUID,
				name        TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				color       TEXT NOT NULL DEFAULT '',
				icon        TEXT NOT NULL DEFAULT '',
				active      BOOLEAN NOT NULL DEFAULT true,
				sort_order  INTEGER NOT NULL DEFAULT 0,
				created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
				UNIQUE (tenant_id, company_id, name)
			)`, schema),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.ticket_subcategories (
				id          UUID PRIMARY KEY,
				tenant_id   UUID NOT NULL,
				company_id  UUID,
				category_id UUID NOT NULL REFERENCES %s.ticket_categories(id) ON DELETE CASCADE,
				name        TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				color       TEXT NOT NULL DEFAULT '',
				icon        TEXT NOT NULL DEFAULT '',
				active      BOOLEAN NOT NULL DEFAULT true,
				sort_order  INTEGER NOT NULL DEFAULT 0,
				created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
				UNIQUE (tenant_id, company_id, category_id, name)
			)`, schema, schema),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.ticket_actions (
				id                     UUID PRIMARY KEY,
				tenant_id              UUID NOT NULL,
				company_id             UUID,
				subcategory_id         UUID NOT NULL REFERENCES %s.ticket_subcategories(id) ON DELETE CASCADE,
				name                   TEXT NOT NULL,
				description            TEXT NOT NULL DEFAULT '',
				estimated_time_minutes INTEGER NOT NULL DEFAULT 0,
				color                  TEXT NOT NULL DEFAULT '',
				icon                   TEXT NOT NULL DEFAULT '',
				active                 BOOLEAN NOT NULL DEFAULT true,
				sort_order             INTEGER NOT NULL DEFAULT 0,
				action_type            TEXT NOT NULL DEFAULT '',
				created_at             TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at             TIMESTAMPTZ NOT NULL DEFAULT now(),
				UNIQUE (tenant_id, company_id, subcategory_id, name)
			)`, schema, schema),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.ticket_field_options (
				id          UUID PRIMARY KEY,
				tenant_id   UUID NOT NULL,
				company_id  UUID NOT NULL,
				field_name  TEXT NOT NULL CHECK (field_name IN ('status', 'priority', 'impact', 'urgency')),
				value       TEXT NOT NULL,
				label       TEXT NOT NULL DEFAULT '',
				color       TEXT NOT NULL DEFAULT '',
				sort_order  INTEGER NOT NULL DEFAULT 0,
				active      BOOLEAN NOT NULL DEFAULT true,
				is_default  BOOLEAN NOT NULL DEFAULT false,
				status_type TEXT NOT NULL DEFAULT '',
				created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
				UNIQUE (tenant_id, company_id, field_name, value)
			)`, schema),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.provisioning_locks (
				tenant_id    UUID NOT NULL,
				company_id   UUID NOT NULL,
				acquired_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
				completed_at TIMESTAMPTZ,
				PRIMARY KEY (tenant_id, company_id)
			)`, schema),
	}
}
