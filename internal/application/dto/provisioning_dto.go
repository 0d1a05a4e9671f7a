package dto

import (
	"github.com/tu-usuario/helpdesk-pro/internal/domain/entity"
	"github.com/tu-usuario/helpdesk-pro/internal/domain/template"
)

// ApplyTemplateRequest cuerpo para aplicar la plantilla por defecto.
type ApplyTemplateRequest struct {
	ActingUserID string `json:"actingUserId"`
}

// CustomCategoryRequest categoría de reemplazo en la plantilla personalizada.
type CustomCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	SortOrder   int    `json:"sortOrder"`
}

// ApplyCustomTemplateRequest cuerpo para aplicar la plantilla con overrides de
// identidad de empresa (y opcionalmente categorías propias).
type ApplyCustomTemplateRequest struct {
	ActingUserID     string                  `json:"actingUserId"`
	CompanyName      string                  `json:"companyName"`
	CompanyEmail     string                  `json:"companyEmail"`
	Industry         string                  `json:"industry"`
	CustomCategories []CustomCategoryRequest `json:"customCategories,omitempty"`
}

// Categories convierte las categorías del request al tipo de plantilla.
func (r ApplyCustomTemplateRequest) Categories() []template.CategoryTemplate {
	out := make([]template.CategoryTemplate, 0, len(r.CustomCategories))
	for _, c := range r.CustomCategories {
		out = append(out, template.CategoryTemplate{
			Name:        c.Name,
			Description: c.Description,
			Color:       c.Color,
			Icon:        c.Icon,
			SortOrder:   c.SortOrder,
		})
	}
	return out
}

// HierarchyCountsResponse filas escritas por nivel.
type HierarchyCountsResponse struct {
	Categories    int `json:"categories"`
	Subcategories int `json:"subcategories"`
	Actions       int `json:"actions"`
}

// ProvisioningResponse resultado de aplicar una plantilla.
type ProvisioningResponse struct {
	TenantID     string                  `json:"tenantId"`
	CompanyID    string                  `json:"companyId"`
	Counts       HierarchyCountsResponse `json:"counts"`
	FieldOptions int                     `json:"fieldOptions"`
	Warnings     []string                `json:"warnings,omitempty"`
}

// FromProvisioningResult mapea el resultado de dominio a la respuesta HTTP.
func FromProvisioningResult(r *entity.ProvisioningResult) *ProvisioningResponse {
	if r == nil {
		return nil
	}
	return &ProvisioningResponse{
		TenantID:  r.TenantID,
		CompanyID: r.CompanyID,
		Counts: HierarchyCountsResponse{
			Categories:    r.Counts.Categories,
			Subcategories: r.Counts.Subcategories,
			Actions:       r.Counts.Actions,
		},
		FieldOptions: r.FieldOptions,
		Warnings:     r.Warnings,
	}
}

// CopyHierarchyRequest cuerpo para clonar la jerarquía entre empresas.
type CopyHierarchyRequest struct {
	SourceCompanyID string `json:"sourceCompanyId"`
	TargetCompanyID string `json:"targetCompanyId"`
}

// CloneResponse resultado del clonado, con resumen legible.
type CloneResponse struct {
	Summary       string   `json:"summary"`
	Categories    int      `json:"categories"`
	Subcategories int      `json:"subcategories"`
	Actions       int      `json:"actions"`
	FieldOptions  int      `json:"fieldOptions"`
	Warnings      []string `json:"warnings,omitempty"`
}

// FromCloneResult mapea el resultado de dominio a la respuesta HTTP.
func FromCloneResult(r *entity.CloneResult) *CloneResponse {
	if r == nil {
		return nil
	}
	return &CloneResponse{
		Summary:       r.Summary(),
		Categories:    r.Categories,
		Subcategories: r.Subcategories,
		Actions:       r.Actions,
		FieldOptions:  r.FieldOptions,
		Warnings:      r.Warnings,
	}
}

// TemplateStatusResponse respuesta de la heurística de aprovisionamiento.
type TemplateStatusResponse struct {
	TenantID string `json:"tenantId"`
	Applied  bool   `json:"applied"`
}

// ApplyIfFirstResponse respuesta del gating de primera empresa.
type ApplyIfFirstResponse struct {
	Applied bool `json:"applied"`
}
