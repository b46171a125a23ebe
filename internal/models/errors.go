package models

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by AppError.
const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeUpstream     = "UPSTREAM_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

// ServerErrorBody is the flat body returned for every 5xx response.
const ServerErrorBody = "Server Error"

// ErrorMessage is one entry of an error response.
type ErrorMessage struct {
	Msg string `json:"msg"`
}

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Errors []ErrorMessage `json:"errors"`
	Code   string         `json:"code,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	// Fields holds one message per failed field for validation errors.
	Fields []string
	Err    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Messages returns the user-facing messages of the error.
func (e *AppError) Messages() []string {
	if len(e.Fields) > 0 {
		return e.Fields
	}
	return []string{e.Message}
}

// Predefined error constructors
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: message,
	}
}

// NewValidationError builds a validation error listing every failed field message.
func NewValidationError(messages ...string) *AppError {
	msg := "Validation failed"
	if len(messages) == 1 {
		msg = messages[0]
	}
	return &AppError{
		Code:    CodeValidation,
		Message: msg,
		Fields:  messages,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
	}
}

func NewUpstreamError(message string, err error) *AppError {
	return &AppError{
		Code:    CodeUpstream,
		Message: message,
		Err:     err,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// IsCode reports whether err is an AppError with the given code.
func IsCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// RespondWithError writes err as a standardized error response.
// Server errors are logged and collapse to a flat text body.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	if status >= fiber.StatusInternalServerError {
		slog.ErrorContext(c.UserContext(), "request error",
			slog.Int("status", status),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
		return c.Status(status).SendString(ServerErrorBody)
	}

	var response ErrorResponse
	var appErr *AppError
	if errors.As(err, &appErr) {
		response.Code = appErr.Code
		for _, msg := range appErr.Messages() {
			response.Errors = append(response.Errors, ErrorMessage{Msg: msg})
		}
	} else {
		response.Errors = []ErrorMessage{{Msg: err.Error()}}
	}

	return c.Status(status).JSON(response)
}
