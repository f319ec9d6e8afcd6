package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/services"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

const internalErrorMessage = "Internal server error"

// respondError maps a service error to its status code. Anything outside
// the service error kinds is treated as an internal failure.
func respondError(c *fiber.Ctx, err error, msg string) error {
	var status int
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		status = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrInvalidArgument):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	default:
		return internalError(c, err, msg)
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: services.Message(err)})
}

func internalError(c *fiber.Ctx, err error, msg string) error {
	slog.Error(msg,
		"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
		"method", c.Method(),
		"path", c.Path(),
		"error", err.Error(),
	)
	captureException(c, err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: internalErrorMessage})
}

func captureException(c *fiber.Ctx, err error) {
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
		return
	}
	if sentry.CurrentHub().Client() != nil {
		sentry.CaptureException(err)
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg})
}

// ErrorHandler is the Fiber error handler. Framework errors keep their status;
// details of 5xx errors are logged and never sent to the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := internalErrorMessage
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		captureException(c, err)
		message = internalErrorMessage
	}

	return c.Status(code).JSON(dto.ErrorResponse{Error: message})
}
