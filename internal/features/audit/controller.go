package audit

import (
	"github.com/gofiber/fiber/v2"
)

type AuditController struct {
	Service AuditService
}

func NewAuditController(service AuditService) *AuditController {
	return &AuditController{Service: service}
}

// GetAuditTrail godoc
// @Summary Get the workflow audit trail for a record
// @Tags audit
// @Produce json
// @Param table path string true "Table name (contracts | business_plans)"
// @Param id path string true "Record ID"
// @Success 200 {array} AuditedEntry
// @Router /api/audit/{table}/{id} [get]
func (ctrl *AuditController) GetAuditTrail(c *fiber.Ctx) error {
	table := c.Params("table")
	recordID := c.Params("id")

	entries, err := ctrl.Service.GetAuditTrail(c.UserContext(), table, recordID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(entries)
}

// GetStepAttribution godoc
// @Summary Get who approved the step that landed a record in a given state
// @Tags audit
// @Produce json
// @Param table path string true "Table name"
// @Param id path string true "Record ID"
// @Param state path string true "Destination state of the step"
// @Success 200 {object} StepAttribution
// @Router /api/audit/{table}/{id}/step/{state} [get]
func (ctrl *AuditController) GetStepAttribution(c *fiber.Ctx) error {
	table := c.Params("table")
	recordID := c.Params("id")
	state := c.Params("state")

	attr, err := ctrl.Service.GetStepAttribution(c.UserContext(), table, recordID, state)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if attr == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No approval recorded for this step"})
	}

	return c.JSON(attr)
}
