package presenters

import (
	"errors"

	"SlimMom-Backend/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type (
	Response struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    any    `json:"data,omitempty"`
		Error   string `json:"error,omitempty"`
	}
)

func StatusFromError(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindAuthentication, domain.KindUnauthorized:
		return fiber.StatusUnauthorized
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func SuccessResponse(c *fiber.Ctx, data any, status int, message string) error {
	return c.Status(status).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes the failure envelope. Server errors are logged with
// their cause and answered with the generic message only.
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	detail := ""
	var de *domain.Error
	switch {
	case status >= fiber.StatusInternalServerError:
		log.Errorw("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		detail = domain.MessageFailedProcessRequest
	case errors.As(err, &de):
		detail = domain.PublicMessage(err)
	case err != nil:
		detail = err.Error()
	}

	return c.Status(status).JSON(Response{
		Status:  false,
		Message: message,
		Error:   detail,
	})
}

// ServiceError answers with the status that matches err's kind.
func ServiceError(c *fiber.Ctx, message string, err error) error {
	return ErrorResponse(c, StatusFromError(err), message, err)
}
