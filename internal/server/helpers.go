package server

import (
	"context"
	"errors"
	"strconv"
	"time"

	"devconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const requestTimeout = 5 * time.Second

// requestContext bounds a handler's downstream calls.
func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), requestTimeout)
}

// currentUserID returns the id set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(localUserID).(uint)
	return id
}

// mapServiceError returns the HTTP status for a service error. notFound is
// the status used for NotFound errors, which differs between profile routes
// (400) and post routes (404).
func mapServiceError(err error, notFound int) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case models.CodeValidation, models.CodeConflict:
		return fiber.StatusBadRequest
	case models.CodeNotFound:
		return notFound
	case models.CodeUnauthorized, models.CodeForbidden:
		return fiber.StatusUnauthorized
	case models.CodeUpstream:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err with the profile-route status mapping.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, mapServiceError(err, fiber.StatusBadRequest), err)
}

// respondResourceError writes err with NotFound mapped to 404, as used by
// post and GitHub routes.
func respondResourceError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, mapServiceError(err, fiber.StatusNotFound), err)
}

// parseID extracts a route parameter as a positive uint.
// On failure it writes a NotFound response with the given status and returns errResponseWritten.
func parseID(c *fiber.Ctx, param, notFoundMsg string, status int) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 64)
	if err != nil || id == 0 {
		_ = models.RespondWithError(c, status, models.NewNotFoundError(notFoundMsg))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseBody decodes the JSON body, writing a 400 on malformed input.
func parseBody(c *fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(dst); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}
