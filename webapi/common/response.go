// Package common holds the shared HTTP response envelope, RFC 9457 problem
// details, request binding and the domain error to status code mapping used
// by every handler package.
package common

import (
	"errors"

	"github.com/amirasaad/balabank/pkg/domain"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

// SuccessResponseJSON writes the standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ProblemDetailsJSON writes a response following RFC 9457 Problem Details.
// Extras may carry a detail string and/or an explicit status code; when no
// status is given the code is derived from err via ErrorToStatusCode.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, extras ...any) error {
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Instance: c.OriginalURL(),
	}
	status := 0
	for _, extra := range extras {
		switch v := extra.(type) {
		case int:
			status = v
		case string:
			pd.Detail = v
		}
	}
	if status == 0 {
		status = ErrorToStatusCode(err)
	}
	pd.Status = status
	if pd.Detail == "" && err != nil {
		pd.Detail = err.Error()
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(pd)
}

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInsufficientFunds):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it using go-playground/validator.
// Returns a pointer to the struct (populated), or writes a 400 problem response and
// returns a nil pointer. The error returned on failure is the write result, not the
// parse or validation error, so handlers can pass it straight back to Fiber without
// the app-level ErrorHandler re-rendering the already-written response.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", nil, err.Error(), fiber.StatusBadRequest)
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return nil, ProblemDetailsJSON(c, "Validation failed", nil, err.Error(), fiber.StatusBadRequest)
	}
	return &input, nil
}
