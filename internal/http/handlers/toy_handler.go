package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "kidzplay/internal/log"
	"kidzplay/internal/services"
	"kidzplay/internal/validate"
)

type ToyHandler struct {
	Catalog *services.CatalogService
	Timeout time.Duration
}

// GET /toys?limit=
func (h *ToyHandler) List(c *fiber.Ctx) error {
	limit := validate.Limit(c.Query("limit"), services.DefaultToyLimit)
	ctx, cancel := opCtx(c, h.Timeout)
	defer cancel()
	toys, err := h.Catalog.ListToys(ctx, limit)
	if err != nil {
		return err
	}
	return c.JSON(toys)
}

// GET /toys/:id answers null for unknown ids.
func (h *ToyHandler) Detail(c *fiber.Ctx) error {
	ctx, cancel := opCtx(c, h.Timeout)
	defer cancel()
	toy, err := h.Catalog.Toy(ctx, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(toy)
}

// GET /toy?subCategory=
func (h *ToyHandler) BySubCategory(c *fiber.Ctx) error {
	ctx, cancel := opCtx(c, h.Timeout)
	defer cancel()
	toys, err := h.Catalog.ToysBySubCategory(ctx, c.Query("subCategory"))
	if err != nil {
		return err
	}
	return c.JSON(toys)
}

// GET /mytoys?email=&type= (gated)
func (h *ToyHandler) Mine(c *fiber.Ctx) error {
	if c.Query("email") == "" {
		return c.JSON([]any{})
	}
	ctx, cancel := opCtx(c, h.Timeout)
	defer cancel()
	toys, err := h.Catalog.SellerToys(ctx, identity(c), validate.SortOrder(c.Query("type")))
	if err != nil {
		return err
	}
	return c.JSON(toys)
}

// POST /toys
func (h *ToyHandler) Create(c *fiber.Ctx) error {
	doc, err := bodyDoc(c)
	if err != nil {
		return err
	}
	ctx, cancel := opCtx(c, h.Timeout)
	defer cancel()
	res, err := h.Catalog.CreateToy(ctx, doc)
	if err != nil {
		return err
	}
	applog.Audit(c, "toy.create", map[string]any{"id": res.InsertedID})
	return c.JSON(res)
}

// PUT /toys/:id
func (h *ToyHandler) Replace(c *fiber.Ctx) error {
	id := c.Params("id")
	doc, err := bodyDoc(c)
	if err != nil {
		return err
	}
	ctx, cancel := opCtx(c, h.Timeout)
	defer cancel()
	res, err := h.Catalog.ReplaceToy(ctx, id, doc)
	if err != nil {
		return err
	}
	applog.Audit(c, "toy.replace", map[string]any{"id": id, "upserted": res.UpsertedCount})
	return c.JSON(res)
}

// DELETE /toys/:id
func (h *ToyHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	ctx, cancel := opCtx(c, h.Timeout)
	defer cancel()
	res, err := h.Catalog.DeleteToy(ctx, id)
	if err != nil {
		return err
	}
	applog.Audit(c, "toy.delete", map[string]any{"id": id, "deleted": res.DeletedCount})
	return c.JSON(res)
}
