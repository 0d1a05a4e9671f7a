package entity

import "fmt"

// HierarchyCounts son filas realmente escritas por nivel (no las nominales de
// la plantilla: los skips por padre ausente reducen el total efectivo).
type HierarchyCounts struct {
	Categories    int
	Subcategories int
	Actions       int
}

// ProvisioningResult es la salida de aplicar una plantilla a un tenant.
// Warnings acumula los caminos degradados (entidades saltadas, columnas
// ausentes); el caller recibe éxito aunque la lista no esté vacía.
type ProvisioningResult struct {
	TenantID     string
	CompanyID    string
	Counts       HierarchyCounts
	FieldOptions int
	Warnings     []string
}

// CloneResult es la salida de copiar la jerarquía de una empresa a otra.
type CloneResult struct {
	Categories    int
	Subcategories int
	Actions       int
	FieldOptions  int
	Warnings      []string
}

// Summary devuelve el resumen legible que consumen los callers HTTP/CLI.
func (r CloneResult) Summary() string {
	return fmt.Sprintf("copiadas %d categorías, %d subcategorías, %d acciones y %d opciones de campo",
		r.Categories, r.Subcategories, r.Actions, r.FieldOptions)
}
