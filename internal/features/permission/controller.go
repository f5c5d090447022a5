package permission

import (
	"github.com/gofiber/fiber/v2"
)

type PermissionController struct {
	Service PermissionService
}

func NewPermissionController(service PermissionService) *PermissionController {
	return &PermissionController{Service: service}
}

// CheckPermission godoc
// @Summary Resolve whether a user can perform an action on a resource
// @Tags permissions
// @Produce json
// @Param userId path string true "User ID"
// @Param resource query string true "Resource name"
// @Param action query string true "Action (view|create|update|delete)"
// @Success 200 {object} map[string]bool
// @Router /api/permissions/{userId}/check [get]
func (ctrl *PermissionController) CheckPermission(c *fiber.Ctx) error {
	userID := c.Params("userId")
	resource := c.Query("resource")
	action := c.Query("action")

	if resource == "" || action == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "resource and action are required"})
	}

	allowed, err := ctrl.Service.Resolve(c.UserContext(), userID, resource, action)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"allowed": allowed})
}

// SetOverride godoc
// @Summary Set an explicit permission override for a user on a resource
// @Tags permissions
// @Accept json
// @Produce json
// @Param override body SetOverrideRequest true "Override"
// @Success 200 {object} map[string]string
// @Router /api/permissions/overrides [put]
func (ctrl *PermissionController) SetOverride(c *fiber.Ctx) error {
	var req SetOverrideRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := ctrl.Service.SetOverride(c.UserContext(), req); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Override saved"})
}

// DeleteOverride godoc
// @Summary Remove an explicit permission override
// @Tags permissions
// @Param id path string true "Override ID"
// @Success 204 {object} nil "No Content"
// @Router /api/permissions/overrides/{id} [delete]
func (ctrl *PermissionController) DeleteOverride(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := ctrl.Service.DeleteOverride(c.UserContext(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListOverrides godoc
// @Summary List a user's explicit permission overrides
// @Tags permissions
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {array} Override
// @Router /api/permissions/{userId}/overrides [get]
func (ctrl *PermissionController) ListOverrides(c *fiber.Ctx) error {
	userID := c.Params("userId")

	overrides, err := ctrl.Service.ListOverrides(c.UserContext(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(overrides)
}
