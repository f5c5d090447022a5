package audit

import (
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/config"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/features/permission"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuditApi struct {
	controller *AuditController
	config     *config.Config
	resolver   middleware.PermissionResolver
}

func NewAuditApi(controller *AuditController, config *config.Config, resolver middleware.PermissionResolver) *AuditApi {
	return &AuditApi{
		controller: controller,
		config:     config,
		resolver:   resolver,
	}
}

func (h *AuditApi) Setup(app *fiber.App) {
	audit := app.Group("/api/audit", middleware.AuthMiddleware(h.config.SkipAuth))

	viewPerm := middleware.RequirePermission(h.resolver, permission.ResourceAudit, permission.ActionView)
	audit.Get("/:table/:id", viewPerm, h.controller.GetAuditTrail)
	audit.Get("/:table/:id/step/:state", viewPerm, h.controller.GetStepAttribution)
}
