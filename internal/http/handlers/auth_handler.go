package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "kidzplay/internal/log"
	"kidzplay/internal/services"
)

type AuthHandler struct {
	Tokens *services.TokenService
}

// POST /jwt signs the request body as the identity payload.
func (h *AuthHandler) Issue(c *fiber.Ctx) error {
	payload, err := bodyDoc(c)
	if err != nil {
		return err
	}
	tok, err := h.Tokens.Issue(payload)
	if err != nil {
		return err
	}
	applog.Info(c, "auth.token.issue", map[string]any{"email": services.IdentityEmail(payload)})
	return c.JSON(fiber.Map{"token": tok})
}
