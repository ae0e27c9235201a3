package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"dialog-messenger-api/apperror"
	"dialog-messenger-api/dto/res"
)

// writeError maps an engine error onto the HTTP taxonomy and renders the
// shared error envelope.
func writeError(c *fiber.Ctx, err error) error {
	status := apperror.HTTPStatus(err)
	return c.Status(status).JSON(res.ErrorResponse{
		Status:     utils.StatusMessage(status),
		StatusCode: status,
		Error:      err.Error(),
	})
}

// requesterID returns the trusted user identity placed in locals by the
// auth middleware.
func requesterID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}
