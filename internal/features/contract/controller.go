package contract

import (
	"strconv"

	common_api "github.com/anhnq-lab/cic-erp-contract-sub002/internal/common/api"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ContractController struct {
	Service ContractService
}

func NewContractController(service ContractService) *ContractController {
	return &ContractController{Service: service}
}

type submitReviewRequest struct {
	DraftURL string `json:"draft_url"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// CreateContract godoc
// @Summary Create a contract in Draft
// @Tags contracts
// @Accept json
// @Produce json
// @Param contract body Contract true "Contract"
// @Success 201 {object} Contract
// @Router /api/contracts [post]
func (ctrl *ContractController) CreateContract(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var input Contract
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := ctrl.Service.CreateContract(c.UserContext(), actor, &input); err != nil {
		return c.Status(common_api.StatusFor(err)).JSON(common_api.Fail(err))
	}

	return c.Status(fiber.StatusCreated).JSON(input)
}

// GetContract godoc
// @Summary Get a contract by ID
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} Contract
// @Router /api/contracts/{id} [get]
func (ctrl *ContractController) GetContract(c *fiber.Ctx) error {
	contract, err := ctrl.Service.GetContract(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if contract == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Contract not found"})
	}
	return c.JSON(contract)
}

// ListContracts godoc
// @Summary List contracts
// @Tags contracts
// @Produce json
// @Success 200 {array} Contract
// @Router /api/contracts [get]
func (ctrl *ContractController) ListContracts(c *fiber.Ctx) error {
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)
	offset, _ := strconv.ParseInt(c.Query("offset", "0"), 10, 64)

	contracts, err := ctrl.Service.ListContracts(c.UserContext(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(contracts)
}

// SubmitForReview godoc
// @Summary Submit a contract draft for legal and finance review
// @Tags contracts
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Param body body submitReviewRequest true "Draft document URL"
// @Success 200 {object} common_api.Result
// @Router /api/contracts/{id}/submit-review [post]
func (ctrl *ContractController) SubmitForReview(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req submitReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	err := ctrl.Service.SubmitForReview(c.UserContext(), actor, c.Params("id"), req.DraftURL)
	return common_api.Respond(c, err)
}

// ApproveLegal godoc
// @Summary Record the legal reviewer's approval
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} common_api.Result
// @Router /api/contracts/{id}/approve-legal [post]
func (ctrl *ContractController) ApproveLegal(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	err := ctrl.Service.ApproveLegal(c.UserContext(), actor, c.Params("id"))
	return common_api.Respond(c, err)
}

// RejectLegal godoc
// @Summary Reject the contract on legal grounds
// @Tags contracts
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Param body body rejectRequest true "Rejection reason"
// @Success 200 {object} common_api.Result
// @Router /api/contracts/{id}/reject-legal [post]
func (ctrl *ContractController) RejectLegal(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req rejectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	err := ctrl.Service.RejectLegal(c.UserContext(), actor, c.Params("id"), req.Reason)
	return common_api.Respond(c, err)
}

// ApproveFinance godoc
// @Summary Record the finance reviewer's approval
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} common_api.Result
// @Router /api/contracts/{id}/approve-finance [post]
func (ctrl *ContractController) ApproveFinance(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	err := ctrl.Service.ApproveFinance(c.UserContext(), actor, c.Params("id"))
	return common_api.Respond(c, err)
}

// RejectFinance godoc
// @Summary Reject the contract on finance grounds
// @Tags contracts
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Param body body rejectRequest true "Rejection reason"
// @Success 200 {object} common_api.Result
// @Router /api/contracts/{id}/reject-finance [post]
func (ctrl *ContractController) RejectFinance(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req rejectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	err := ctrl.Service.RejectFinance(c.UserContext(), actor, c.Params("id"), req.Reason)
	return common_api.Respond(c, err)
}

// SubmitForSign godoc
// @Summary Send a fully approved contract for signature
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} common_api.Result
// @Router /api/contracts/{id}/submit-sign [post]
func (ctrl *ContractController) SubmitForSign(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	err := ctrl.Service.SubmitForSign(c.UserContext(), actor, c.Params("id"))
	return common_api.Respond(c, err)
}

// SignContract godoc
// @Summary Mark the contract as signed and active
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} common_api.Result
// @Router /api/contracts/{id}/sign [post]
func (ctrl *ContractController) SignContract(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	err := ctrl.Service.SignContract(c.UserContext(), actor, c.Params("id"))
	return common_api.Respond(c, err)
}

// CompleteContract godoc
// @Summary Mark an active contract as completed
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} common_api.Result
// @Router /api/contracts/{id}/complete [post]
func (ctrl *ContractController) CompleteContract(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	err := ctrl.Service.CompleteContract(c.UserContext(), actor, c.Params("id"))
	return common_api.Respond(c, err)
}
