package api

import (
	common_models "github.com/anhnq-lab/cic-erp-contract-sub002/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps a workflow error kind to its HTTP status.
func StatusFor(err error) int {
	switch common_models.KindOf(err) {
	case common_models.ErrUnauthorized:
		return fiber.StatusForbidden
	case common_models.ErrInvalidTransition:
		return fiber.StatusConflict
	case common_models.ErrValidation:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusBadGateway
	}
}

// Respond writes the Result envelope for a workflow mutation outcome.
func Respond(c *fiber.Ctx, err error) error {
	if err != nil {
		return c.Status(StatusFor(err)).JSON(Fail(err))
	}
	return c.JSON(OK())
}
