package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/helpdesk-pro/internal/application/dto"
	"github.com/tu-usuario/helpdesk-pro/internal/application/provisioning"
	"github.com/tu-usuario/helpdesk-pro/internal/domain"
)

// ProvisioningHandler maneja las peticiones HTTP del motor de plantillas.
type ProvisioningHandler struct {
	templateUC *provisioning.TemplateUseCase
	cloneUC    *provisioning.CloneUseCase
}

// NewProvisioningHandler construye el handler inyectando los casos de uso.
func NewProvisioningHandler(templateUC *provisioning.TemplateUseCase, cloneUC *provisioning.CloneUseCase) *ProvisioningHandler {
	return &ProvisioningHandler{templateUC: templateUC, cloneUC: cloneUC}
}

// ApplyDefault godoc
// @Summary      Aplicar plantilla por defecto al tenant
// @Tags         provisioning
// @Accept       json
// @Produce      json
// @Param        tenantId  path  string  true  "ID del tenant (UUID)"
// @Param        body      body  dto.ApplyTemplateRequest  false  "Usuario que ejecuta"
// @Success      200  {object}  dto.ProvisioningResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/tenants/{tenantId}/template [post]
func (h *ProvisioningHandler) ApplyDefault(c *fiber.Ctx) error {
	tenantID := c.Params("tenantId")
	var in dto.ApplyTemplateRequest
	_ = c.BodyParser(&in) // cuerpo opcional

	out, err := h.templateUC.ApplyDefaultTemplate(c.UserContext(), tenantID, in.ActingUserID)
	if err != nil {
		return provisioningError(c, err)
	}
	return c.JSON(dto.FromProvisioningResult(out))
}

// ApplyCustomized godoc
// @Summary      Aplicar plantilla con identidad de empresa personalizada
// @Tags         provisioning
// @Accept       json
// @Produce      json
// @Param        tenantId  path  string  true  "ID del tenant (UUID)"
// @Param        body      body  dto.ApplyCustomTemplateRequest  true  "Overrides"
// @Success      200  {object}  dto.ProvisioningResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/tenants/{tenantId}/template/custom [post]
func (h *ProvisioningHandler) ApplyCustomized(c *fiber.Ctx) error {
	tenantID := c.Params("tenantId")
	var in dto.ApplyCustomTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ov := provisioning.TemplateOverrides{
		CompanyName:      in.CompanyName,
		CompanyEmail:     in.CompanyEmail,
		Industry:         in.Industry,
		CustomCategories: in.Categories(),
	}
	out, err := h.templateUC.ApplyCustomizedTemplate(c.UserContext(), tenantID, in.ActingUserID, ov)
	if err != nil {
		return provisioningError(c, err)
	}
	return c.JSON(dto.FromProvisioningResult(out))
}

// CopyHierarchy godoc
// @Summary      Clonar jerarquía entre empresas del mismo tenant
// @Tags         provisioning
// @Accept       json
// @Produce      json
// @Param        tenantId  path  string  true  "ID del tenant (UUID)"
// @Param        body      body  dto.CopyHierarchyRequest  true  "Empresas origen y destino"
// @Success      200  {object}  dto.CloneResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/tenants/{tenantId}/hierarchy/copy [post]
func (h *ProvisioningHandler) CopyHierarchy(c *fiber.Ctx) error {
	tenantID := c.Params("tenantId")
	var in dto.CopyHierarchyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SourceCompanyID == "" || in.TargetCompanyID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sourceCompanyId y targetCompanyId son requeridos"})
	}
	out, err := h.cloneUC.CopyHierarchy(c.UserContext(), tenantID, in.SourceCompanyID, in.TargetCompanyID)
	if err != nil {
		return provisioningError(c, err)
	}
	return c.JSON(dto.FromCloneResult(out))
}

// Status godoc
// @Summary      Consultar si el tenant ya fue aprovisionado
// @Tags         provisioning
// @Produce      json
// @Param        tenantId  path  string  true  "ID del tenant (UUID)"
// @Success      200  {object}  dto.TemplateStatusResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/tenants/{tenantId}/template/status [get]
func (h *ProvisioningHandler) Status(c *fiber.Ctx) error {
	tenantID := c.Params("tenantId")
	applied, err := h.templateUC.IsTemplateApplied(c.UserContext(), tenantID)
	if err != nil {
		return provisioningError(c, err)
	}
	return c.JSON(dto.TemplateStatusResponse{TenantID: tenantID, Applied: applied})
}

// ApplyIfFirstCompany godoc
// @Summary      Aplicar plantilla solo si la empresa es la primera del tenant
// @Tags         provisioning
// @Produce      json
// @Param        tenantId   path  string  true  "ID del tenant (UUID)"
// @Param        companyId  path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.ApplyIfFirstResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/tenants/{tenantId}/companies/{companyId}/apply-if-first [post]
func (h *ProvisioningHandler) ApplyIfFirstCompany(c *fiber.Ctx) error {
	tenantID := c.Params("tenantId")
	companyID := c.Params("companyId")
	applied, err := h.templateUC.ApplyTemplateIfFirstCompany(c.UserContext(), tenantID, companyID)
	if err != nil {
		return provisioningError(c, err)
	}
	return c.JSON(dto.ApplyIfFirstResponse{Applied: applied})
}

// provisioningError mapea errores de dominio a códigos HTTP.
func provisioningError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidTenantID), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrProvisioningTimeout):
		return c.Status(fiber.StatusGatewayTimeout).JSON(dto.ErrorResponse{Code: "TIMEOUT", Message: err.Error()})
	case errors.Is(err, domain.ErrCompanyCreation):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "COMPANY_CREATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
