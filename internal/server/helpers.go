package server

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// currentUserID returns the session principal set by LoadPrincipal, if any.
func currentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userID").(uint)
	return userID, ok
}

// parseID reads the :id route parameter.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
