package contract

import (
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/config"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/features/permission"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ContractApi struct {
	controller *ContractController
	resolver   middleware.PermissionResolver
	config     *config.Config
}

func NewContractApi(controller *ContractController, resolver middleware.PermissionResolver, config *config.Config) *ContractApi {
	return &ContractApi{
		controller: controller,
		resolver:   resolver,
		config:     config,
	}
}

func (h *ContractApi) Setup(app *fiber.App) {
	contracts := app.Group("/api/contracts", middleware.AuthMiddleware(h.config.SkipAuth))

	contracts.Post("/", middleware.RequirePermission(h.resolver, permission.ResourceContracts, permission.ActionCreate), h.controller.CreateContract)
	contracts.Get("/", middleware.RequirePermission(h.resolver, permission.ResourceContracts, permission.ActionView), h.controller.ListContracts)
	contracts.Get("/:id", middleware.RequirePermission(h.resolver, permission.ResourceContracts, permission.ActionView), h.controller.GetContract)

	// Workflow actions. Role guards live in the engine; the matrix only gates
	// the coarse update permission here.
	update := middleware.RequirePermission(h.resolver, permission.ResourceContracts, permission.ActionUpdate)
	contracts.Post("/:id/submit-review", update, h.controller.SubmitForReview)
	contracts.Post("/:id/approve-legal", update, h.controller.ApproveLegal)
	contracts.Post("/:id/reject-legal", update, h.controller.RejectLegal)
	contracts.Post("/:id/approve-finance", update, h.controller.ApproveFinance)
	contracts.Post("/:id/reject-finance", update, h.controller.RejectFinance)
	contracts.Post("/:id/submit-sign", update, h.controller.SubmitForSign)
	contracts.Post("/:id/sign", update, h.controller.SignContract)
	contracts.Post("/:id/complete", update, h.controller.CompleteContract)
}
