package permission

import (
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/config"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PermissionApi struct {
	controller *PermissionController
	service    PermissionService
	config     *config.Config
}

func NewPermissionApi(controller *PermissionController, service PermissionService, config *config.Config) *PermissionApi {
	return &PermissionApi{
		controller: controller,
		service:    service,
		config:     config,
	}
}

func (h *PermissionApi) Setup(app *fiber.App) {
	perms := app.Group("/api/permissions", middleware.AuthMiddleware(h.config.SkipAuth))

	perms.Get("/:userId/check", h.controller.CheckPermission)
	perms.Get("/:userId/overrides", middleware.RequirePermission(h.service, ResourcePermissions, ActionView), h.controller.ListOverrides)
	perms.Put("/overrides", middleware.RequirePermission(h.service, ResourcePermissions, ActionUpdate), h.controller.SetOverride)
	perms.Delete("/overrides/:id", middleware.RequirePermission(h.service, ResourcePermissions, ActionDelete), h.controller.DeleteOverride)
}
