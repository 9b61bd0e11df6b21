package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"scaffoldapi/internal/http/middleware"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Detail carries the underlying error text. Populated only in debug mode.
	Detail string `json:"detail,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return writeErrorDetail(c, status, code, message, "")
}

// writeErrorDetail is writeError with an optional detail string; callers pass
// a detail only when debug mode is on.
func writeErrorDetail(c *fiber.Ctx, status int, code, message, detail string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
			Detail:  detail,
		},
	}
	return c.Status(status).JSON(res)
}

// ErrorHandler returns a Fiber global error handler that standardizes error
// responses. With debug enabled the envelope carries the underlying error
// text; outside debug nothing internal leaks.
func ErrorHandler(debug bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if errors.Is(err, middleware.ErrDisallowedHost) {
			return writeError(c, fiber.StatusBadRequest, "DISALLOWED_HOST", "host not allowed")
		}

		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		detail := ""
		if debug && err != nil {
			detail = err.Error()
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeErrorDetail(c, status, "BAD_REQUEST", "bad request", detail)
		case fiber.StatusNotFound:
			return writeErrorDetail(c, status, "NOT_FOUND", "resource not found", detail)
		case fiber.StatusMethodNotAllowed:
			return writeErrorDetail(c, status, "METHOD_NOT_ALLOWED", "method not allowed", detail)
		default:
			return writeErrorDetail(c, status, "INTERNAL_ERROR", "internal server error", detail)
		}
	}
}
