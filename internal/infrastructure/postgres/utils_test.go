package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/helpdesk-pro/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de derivación del schema y clasificación de errores de Postgres.
//
// schemaName interpola el identificador directamente en el SQL, así que la
// validación del UUID es la única barrera contra inyección: estos tests la
// fijan.
// ──────────────────────────────────────────────────────────────────────────────

func TestSchemaName_UUIDValido(t *testing.T) {
	got, err := schemaName("550e8400-e29b-41d4-a716-446655440000")
	require.NoError(t, err)
	assert.Equal(t, "tenant_550e8400_e29b_41d4_a716_446655440000", got)
}

func TestSchemaName_NormalizaMayusculas(t *testing.T) {
	got, err := schemaName("550E8400-E29B-41D4-A716-446655440000")
	require.NoError(t, err)
	assert.Equal(t, "tenant_550e8400_e29b_41d4_a716_446655440000", got,
		"el UUID debe normalizarse a minúsculas")
}

func TestSchemaName_RechazaEntradasPeligrosas(t *testing.T) {
	invalid := []string{
		"",
		"no-es-un-uuid",
		"550e8400-e29b-41d4-a716",                               // truncado
		`550e8400"; DROP SCHEMA public CASCADE; --`,             // inyección
		"tenant_550e8400_e29b_41d4_a716_446655440000",           // ya derivado
		"550e8400-e29b-41d4-a716-446655440000 OR 1=1",           // sufijo
		"zzze8400-e29b-41d4-a716-446655440000",                  // hex inválido
	}
	for _, in := range invalid {
		_, err := schemaName(in)
		assert.ErrorIs(t, err, domain.ErrInvalidTenantID, "debe rechazarse: %q", in)
	}
}

func TestClasificadoresDeErrores(t *testing.T) {
	assert.True(t, isMissingRelation(&pgconn.PgError{Code: "42P01"}), "undefined_table es schema ausente")
	assert.True(t, isMissingRelation(&pgconn.PgError{Code: "3F000"}), "invalid_schema_name es schema ausente")
	assert.False(t, isMissingRelation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isMissingRelation(errors.New("otra cosa")))

	for _, code := range []string{"42P07", "42710", "42701"} {
		assert.True(t, isAlreadyExists(&pgconn.PgError{Code: code}), "código %s es deriva de DDL", code)
	}
	assert.False(t, isAlreadyExists(&pgconn.PgError{Code: "23505"}))

	assert.True(t, isUndefinedColumn(&pgconn.PgError{Code: "42703"}))
	assert.False(t, isUndefinedColumn(errors.New("23505")))
}
