package api

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// handleServiceError maps errors crossing the service container (which arrive
// as plain strings) onto HTTP status codes.
func handleServiceError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "invalid email or password"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid email or password",
		})
	case strings.Contains(errStr, "refresh token is expired or has been revoked"),
		strings.Contains(errStr, "invalid refresh token"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Refresh token is invalid or has been revoked",
		})
	case strings.Contains(errStr, "already exists"):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "conflict",
			Message: "User with this email or username already exists",
		})
	case strings.Contains(errStr, "not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Resource not found",
		})
	case strings.Contains(errStr, "only the owner"):
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
			Error:   "forbidden",
			Message: "Only the owner can modify this resource",
		})
	case strings.Contains(errStr, "invalid email format"),
		strings.Contains(errStr, "password must be"),
		strings.Contains(errStr, "required"),
		strings.Contains(errStr, "must contain"),
		strings.Contains(errStr, "exceeds"),
		strings.Contains(errStr, "cannot send a message to yourself"),
		strings.Contains(errStr, "images are accepted"),
		strings.Contains(errStr, "file is empty"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: trimServiceError(errStr),
		})
	case strings.Contains(errStr, "API key is not configured"),
		strings.Contains(errStr, "feed request failed"):
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error:   "bad_gateway",
			Message: "Upstream movie feed is unavailable",
		})
	default:
		// Log the actual error but don't expose it to the client
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}

// trimServiceError strips the request-failed wrapping added by adapters so
// validation messages read cleanly.
func trimServiceError(errStr string) string {
	if idx := strings.LastIndex(errStr, ": "); idx >= 0 {
		return errStr[idx+2:]
	}
	return errStr
}
