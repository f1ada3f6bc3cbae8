package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "kidzplay/internal/log"
	"kidzplay/internal/services"
)

type CartHandler struct {
	Cart    *services.CartService
	Timeout time.Duration
}

// GET /carts?email= (gated) lists only the caller's items.
func (h *CartHandler) List(c *fiber.Ctx) error {
	if c.Query("email") == "" {
		return c.JSON([]any{})
	}
	ctx, cancel := opCtx(c, h.Timeout)
	defer cancel()
	items, err := h.Cart.Items(ctx, identity(c))
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// POST /carts
func (h *CartHandler) Add(c *fiber.Ctx) error {
	item, err := bodyDoc(c)
	if err != nil {
		return err
	}
	ctx, cancel := opCtx(c, h.Timeout)
	defer cancel()
	res, err := h.Cart.Add(ctx, item)
	if err != nil {
		return err
	}
	applog.Audit(c, "cart.add", map[string]any{"id": res.InsertedID})
	return c.JSON(res)
}

// DELETE /carts/:id
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id := c.Params("id")
	ctx, cancel := opCtx(c, h.Timeout)
	defer cancel()
	res, err := h.Cart.Remove(ctx, id)
	if err != nil {
		return err
	}
	applog.Audit(c, "cart.remove", map[string]any{"id": id, "deleted": res.DeletedCount})
	return c.JSON(res)
}
