package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "kidzplay/internal/log"
	"kidzplay/internal/services"
)

type PaymentHandler struct {
	Payments *services.PaymentService
	Timeout  time.Duration
}

type intentRequest struct {
	Price *float64 `json:"price"`
}

// POST /create-payment-intent
func (h *PaymentHandler) CreateIntent(c *fiber.Ctx) error {
	var req intentRequest
	if err := c.BodyParser(&req); err != nil || req.Price == nil {
		return fiber.NewError(fiber.StatusBadRequest, "price is required")
	}
	ctx, cancel := opCtx(c, h.Timeout)
	defer cancel()
	secret, err := h.Payments.CreateIntent(ctx, *req.Price)
	if err != nil {
		return err
	}
	applog.Audit(c, "payment.intent.create", map[string]any{"amount": services.MinorUnits(*req.Price)})
	return c.JSON(fiber.Map{"clientSecret": secret})
}
