package plan

import (
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/config"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/features/permission"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PlanApi struct {
	controller *PlanController
	resolver   middleware.PermissionResolver
	config     *config.Config
}

func NewPlanApi(controller *PlanController, resolver middleware.PermissionResolver, config *config.Config) *PlanApi {
	return &PlanApi{
		controller: controller,
		resolver:   resolver,
		config:     config,
	}
}

func (h *PlanApi) Setup(app *fiber.App) {
	plans := app.Group("/api/plans", middleware.AuthMiddleware(h.config.SkipAuth))

	viewPerm := middleware.RequirePermission(h.resolver, permission.ResourceBusinessPlans, permission.ActionView)
	update := middleware.RequirePermission(h.resolver, permission.ResourceBusinessPlans, permission.ActionUpdate)

	plans.Post("/", middleware.RequirePermission(h.resolver, permission.ResourceBusinessPlans, permission.ActionCreate), h.controller.CreatePlan)
	plans.Get("/contract/:contractId", viewPerm, h.controller.ListVersions)
	plans.Get("/contract/:contractId/active", viewPerm, h.controller.GetActivePlan)
	plans.Get("/contract/:contractId/export", viewPerm, h.controller.ExportFinancials)
	plans.Get("/:id", viewPerm, h.controller.GetPlan)

	plans.Put("/:id", update, h.controller.EditPlan)
	plans.Post("/:id/versions", update, h.controller.CreateVersion)
	plans.Post("/:id/submit", update, h.controller.SubmitPlan)
	plans.Post("/:id/approve", update, h.controller.ApprovePlan)
	plans.Post("/:id/reject", update, h.controller.RejectPlan)
}
