package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tu-usuario/helpdesk-pro/internal/application/provisioning"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TemplateUC *provisioning.TemplateUseCase
	CloneUC    *provisioning.CloneUseCase
}

// Router registra las rutas de la API. La autenticación y la resolución de
// tenant por request viven en el gateway de la aplicación general; esta API
// interna expone el motor de plantillas tal cual.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	tenants := api.Group("/tenants")
	h := NewProvisioningHandler(deps.TemplateUC, deps.CloneUC)
	tenants.Post("/:tenantId/template", h.ApplyDefault)
	tenants.Post("/:tenantId/template/custom", h.ApplyCustomized)
	tenants.Get("/:tenantId/template/status", h.Status)
	tenants.Post("/:tenantId/hierarchy/copy", h.CopyHierarchy)
	tenants.Post("/:tenantId/companies/:companyId/apply-if-first", h.ApplyIfFirstCompany)
}
