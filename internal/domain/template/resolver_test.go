package template_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/helpdesk-pro/internal/domain/template"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del resolver de dos pasadas (plantilla → entidades insertables)
// ──────────────────────────────────────────────────────────────────────────────

const (
	testTenantID  = "11111111-2222-3333-4444-555555555555"
	testCompanyID = "00000000-0000-0000-0000-000000000001"
)

// sequentialIDs devuelve un generador determinista id-1, id-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// Caso 1: la plantilla embarcada se resuelve completa, sin entidades saltadas.
func TestResolve_PlantillaPorDefectoSinSaltos(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	res := template.Resolve(template.Default(), testTenantID, testCompanyID, sequentialIDs(), now)

	assert.Len(t, res.Categories, 5)
	assert.Len(t, res.Subcategories, 20)
	assert.Len(t, res.Actions, 30)
	assert.Empty(t, res.Skipped, "la plantilla embarcada no debe producir entidades saltadas")
}

// Caso 2: las referencias padre→hijo quedan resueltas a IDs generados y todas
// las entidades llevan tenant, empresa y timestamps.
func TestResolve_ReferenciasResueltas(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	res := template.Resolve(template.Default(), testTenantID, testCompanyID, sequentialIDs(), now)

	categoryIDs := make(map[string]bool)
	for _, c := range res.Categories {
		require.NotEmpty(t, c.ID)
		assert.False(t, categoryIDs[c.ID], "ID de categoría repetido: %s", c.ID)
		categoryIDs[c.ID] = true
		assert.Equal(t, testTenantID, c.TenantID)
		assert.Equal(t, testCompanyID, c.CompanyID)
		assert.True(t, c.Active, "las categorías nuevas nacen activas")
		assert.Equal(t, now, c.CreatedAt)
	}

	subcategoryIDs := make(map[string]bool)
	for _, s := range res.Subcategories {
		assert.True(t, categoryIDs[s.CategoryID],
			"la subcategoría %q debe apuntar a un ID de categoría generado", s.Name)
		subcategoryIDs[s.ID] = true
	}

	for _, a := range res.Actions {
		assert.True(t, subcategoryIDs[a.SubcategoryID],
			"la acción %q debe apuntar a un ID de subcategoría generado", a.Name)
	}
}

// Caso 3: una subcategoría con categoría inexistente se salta junto con sus
// acciones; el resto de la jerarquía se resuelve igual.
func TestResolve_PadreInexistenteSeSalta(t *testing.T) {
	def := &template.Definition{
		Categories: []template.CategoryTemplate{
			{Name: "Hardware"},
		},
		Subcategories: []template.SubcategoryTemplate{
			{CategoryName: "Hardware", Name: "Impresoras"},
			{CategoryName: "NoExiste", Name: "Huérfana"},
		},
		Actions: []template.ActionTemplate{
			{SubcategoryName: "Impresoras", Name: "Cambio de tóner"},
			{SubcategoryName: "Huérfana", Name: "Acción huérfana"},
		},
	}

	res := template.Resolve(def, testTenantID, testCompanyID, sequentialIDs(), time.Now())

	assert.Len(t, res.Categories, 1)
	assert.Len(t, res.Subcategories, 1, "la subcategoría huérfana no debe resolverse")
	assert.Len(t, res.Actions, 1, "la acción colgada de la huérfana tampoco")

	require.Len(t, res.Skipped, 2)
	assert.Equal(t, template.SkippedEntity{Kind: "subcategory", Name: "Huérfana", ParentName: "NoExiste"}, res.Skipped[0])
	assert.Equal(t, template.SkippedEntity{Kind: "action", Name: "Acción huérfana", ParentName: "Huérfana"}, res.Skipped[1])
}

// Caso 4: una plantilla vacía resuelve a un plan vacío, sin pánico.
func TestResolve_PlantillaVacia(t *testing.T) {
	res := template.Resolve(&template.Definition{}, testTenantID, testCompanyID, sequentialIDs(), time.Now())

	assert.Empty(t, res.Categories)
	assert.Empty(t, res.Subcategories)
	assert.Empty(t, res.Actions)
	assert.Empty(t, res.Skipped)
}

// Caso 5: FieldOptionEntities materializa todas las opciones con IDs nuevos y
// preserva IsDefault/StatusType.
func TestFieldOptionEntities(t *testing.T) {
	opts := template.Fallback()
	entities := template.FieldOptionEntities(opts, testTenantID, testCompanyID, sequentialIDs(), time.Now())

	require.Len(t, entities, len(opts))
	seen := make(map[string]bool)
	for i, e := range entities {
		assert.NotEmpty(t, e.ID)
		assert.False(t, seen[e.ID], "ID de opción repetido: %s", e.ID)
		seen[e.ID] = true
		assert.Equal(t, testTenantID, e.TenantID)
		assert.Equal(t, testCompanyID, e.CompanyID)
		assert.Equal(t, opts[i].FieldName, e.FieldName)
		assert.Equal(t, opts[i].Value, e.Value)
		assert.Equal(t, opts[i].IsDefault, e.IsDefault)
		assert.Equal(t, opts[i].StatusType, e.StatusType)
		assert.True(t, e.Active)
	}
}
