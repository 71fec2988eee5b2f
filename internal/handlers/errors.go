package handlers

import (
	"errors"
	"log/slog"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gradcollab/gradcollab-backend/internal/dto"
	"github.com/gradcollab/gradcollab-backend/internal/services"
)

// ErrorHandler is the fiber-wide handler for errors returned by handlers.
// Client errors keep their message; everything else is logged, reported
// and answered with a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= 500 {
		attrs := []any{
			"method", c.Method(),
			"path", c.Path(),
			"trace_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"error", err.Error(),
		}
		if userID, ok := c.Locals("user_id").(string); ok {
			attrs = append(attrs, "user_id", userID)
		}
		slog.Error("unhandled server error", attrs...)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}

// FormFailure answers input errors with 403 and a FormError body. It
// reports false when err is not an input error.
func FormFailure(c *fiber.Ctx, err error) (bool, error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return true, c.Status(fiber.StatusForbidden).JSON(dto.NewFormError(verr.Fields))
	}
	return false, nil
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.NewFormError(nil, "Invalid request body"))
}
