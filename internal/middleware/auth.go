package middleware

import (
	"strings"

	"golang-sms-dispatch/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

// BearerAuth rejects requests whose Authorization header does not carry one
// of keys as a bearer token. It runs before the body is read.
func BearerAuth(keys map[string]struct{}, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if ok {
			_, ok = keys[token]
		}
		if !ok {
			m.GatewayRequest(metrics.OutcomeUnauthorized)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  fiber.StatusUnauthorized,
				"message": "Unauthorized",
			})
		}
		return c.Next()
	}
}

// bearerToken extracts the token from "Bearer <token>". The scheme is
// matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
