package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "kidzplay/internal/log"
	"kidzplay/internal/services"
)

// IdentityPayload is the fiber local holding the decoded token payload.
const IdentityPayload = applog.PayloadLocal

// RequireIdentity admits requests carrying a valid bearer token whose email
// equals the "email" query parameter when one is given. Rejections never
// reach the wrapped handler.
func RequireIdentity(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			applog.Security(c, "authz.unauthorized", map[string]any{"reason": "missing_bearer"})
			return c.Status(fiber.StatusUnauthorized).JSON(errorBody("unauthorized access"))
		}
		payload, err := tokens.Verify(raw)
		if err != nil {
			applog.Security(c, "authz.unauthorized", map[string]any{"reason": err.Error()})
			return c.Status(fiber.StatusUnauthorized).JSON(errorBody("unauthorized access"))
		}

		email := services.IdentityEmail(payload)
		c.Locals(IdentityPayload, payload)
		c.Locals(applog.IdentityLocal, email)

		if asked := c.Query("email"); asked != "" && asked != email {
			applog.Security(c, "authz.forbidden", map[string]any{"requested": asked})
			return c.Status(fiber.StatusForbidden).JSON(errorBody("forbidden access"))
		}
		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// identity returns the verified caller email set by RequireIdentity.
func identity(c *fiber.Ctx) string {
	email, _ := c.Locals(applog.IdentityLocal).(string)
	return email
}
