package plan

import (
	common_api "github.com/anhnq-lab/cic-erp-contract-sub002/internal/common/api"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PlanController struct {
	Service PlanService
}

func NewPlanController(service PlanService) *PlanController {
	return &PlanController{Service: service}
}

type approveRequest struct {
	Tier string `json:"tier,omitempty"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

type editRequest struct {
	Financials Financials `json:"financials"`
	Notes      string     `json:"notes"`
}

// planView carries the advisory low-margin flag alongside the stored plan.
type planView struct {
	*BusinessPlan
	RequiresLeadershipReview bool `json:"requires_leadership_review"`
}

func view(p *BusinessPlan) planView {
	return planView{BusinessPlan: p, RequiresLeadershipReview: p.RequiresLeadershipReview()}
}

// CreatePlan godoc
// @Summary Create version 1 of a contract's business plan
// @Tags plans
// @Accept json
// @Produce json
// @Param plan body BusinessPlan true "Business plan"
// @Success 201 {object} planView
// @Router /api/plans [post]
func (ctrl *PlanController) CreatePlan(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var input BusinessPlan
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := ctrl.Service.CreatePlan(c.UserContext(), actor, &input); err != nil {
		return c.Status(common_api.StatusFor(err)).JSON(common_api.Fail(err))
	}

	return c.Status(fiber.StatusCreated).JSON(view(&input))
}

// GetPlan godoc
// @Summary Get a business plan by ID
// @Tags plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} planView
// @Router /api/plans/{id} [get]
func (ctrl *PlanController) GetPlan(c *fiber.Ctx) error {
	p, err := ctrl.Service.GetPlan(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Plan not found"})
	}
	return c.JSON(view(p))
}

// GetActivePlan godoc
// @Summary Get the active plan version for a contract
// @Tags plans
// @Produce json
// @Param contractId path string true "Contract ID"
// @Success 200 {object} planView
// @Router /api/plans/contract/{contractId}/active [get]
func (ctrl *PlanController) GetActivePlan(c *fiber.Ctx) error {
	p, err := ctrl.Service.GetActivePlan(c.UserContext(), c.Params("contractId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if p == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No active plan for this contract"})
	}
	return c.JSON(view(p))
}

// ListVersions godoc
// @Summary List all plan versions for a contract
// @Tags plans
// @Produce json
// @Param contractId path string true "Contract ID"
// @Success 200 {array} BusinessPlan
// @Router /api/plans/contract/{contractId} [get]
func (ctrl *PlanController) ListVersions(c *fiber.Ctx) error {
	plans, err := ctrl.Service.ListVersions(c.UserContext(), c.Params("contractId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(plans)
}

// SubmitPlan godoc
// @Summary Submit a draft plan into the approval chain
// @Tags plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} common_api.Result
// @Router /api/plans/{id}/submit [post]
func (ctrl *PlanController) SubmitPlan(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	err := ctrl.Service.SubmitPlan(c.UserContext(), actor, c.Params("id"))
	return common_api.Respond(c, err)
}

// ApprovePlan godoc
// @Summary Approve the plan at its current tier
// @Tags plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param body body approveRequest false "Expected tier (stale-UI check)"
// @Success 200 {object} common_api.Result
// @Router /api/plans/{id}/approve [post]
func (ctrl *PlanController) ApprovePlan(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req approveRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
	}

	err := ctrl.Service.ApprovePlan(c.UserContext(), actor, c.Params("id"), req.Tier)
	return common_api.Respond(c, err)
}

// RejectPlan godoc
// @Summary Reject the plan at its current tier
// @Tags plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param body body rejectRequest true "Rejection reason"
// @Success 200 {object} common_api.Result
// @Router /api/plans/{id}/reject [post]
func (ctrl *PlanController) RejectPlan(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req rejectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	err := ctrl.Service.RejectPlan(c.UserContext(), actor, c.Params("id"), req.Reason)
	return common_api.Respond(c, err)
}

// EditPlan godoc
// @Summary Edit a draft or rejected plan in place
// @Tags plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param body body editRequest true "New financials"
// @Success 200 {object} common_api.Result
// @Router /api/plans/{id} [put]
func (ctrl *PlanController) EditPlan(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req editRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	err := ctrl.Service.EditPlan(c.UserContext(), actor, c.Params("id"), req.Financials, req.Notes)
	return common_api.Respond(c, err)
}

// CreateVersion godoc
// @Summary Create a new draft version superseding the active plan
// @Tags plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID being superseded"
// @Param body body editRequest true "New financials"
// @Success 201 {object} planView
// @Router /api/plans/{id}/versions [post]
func (ctrl *PlanController) CreateVersion(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req editRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	next, err := ctrl.Service.CreateVersion(c.UserContext(), actor, c.Params("id"), req.Financials, req.Notes)
	if err != nil {
		return c.Status(common_api.StatusFor(err)).JSON(common_api.Fail(err))
	}

	return c.Status(fiber.StatusCreated).JSON(view(next))
}

// ExportFinancials godoc
// @Summary Download the plan version history as an xlsx workbook
// @Tags plans
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param contractId path string true "Contract ID"
// @Success 200 {file} binary
// @Router /api/plans/contract/{contractId}/export [get]
func (ctrl *PlanController) ExportFinancials(c *fiber.Ctx) error {
	data, err := ctrl.Service.ExportFinancials(c.UserContext(), c.Params("contractId"))
	if err != nil {
		return c.Status(common_api.StatusFor(err)).JSON(common_api.Fail(err))
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="pakd-history.xlsx"`)
	return c.Send(data)
}
