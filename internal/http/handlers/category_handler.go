package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "kidzplay/internal/log"
	"kidzplay/internal/services"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
	Timeout time.Duration
}

// GET /categorys
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	ctx, cancel := opCtx(c, h.Timeout)
	defer cancel()
	cats, err := h.Catalog.ListCategories(ctx)
	if err != nil {
		return err
	}
	return c.JSON(cats)
}

// POST /categorys
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	doc, err := bodyDoc(c)
	if err != nil {
		return err
	}
	ctx, cancel := opCtx(c, h.Timeout)
	defer cancel()
	res, err := h.Catalog.CreateCategory(ctx, doc)
	if err != nil {
		return err
	}
	applog.Audit(c, "category.create", map[string]any{"id": res.InsertedID})
	return c.JSON(res)
}

// PUT /categorys/:id
func (h *CategoryHandler) Replace(c *fiber.Ctx) error {
	id := c.Params("id")
	doc, err := bodyDoc(c)
	if err != nil {
		return err
	}
	ctx, cancel := opCtx(c, h.Timeout)
	defer cancel()
	res, err := h.Catalog.ReplaceCategory(ctx, id, doc)
	if err != nil {
		return err
	}
	applog.Audit(c, "category.replace", map[string]any{"id": id, "upserted": res.UpsertedCount})
	return c.JSON(res)
}

// DELETE /categorys/:id
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	ctx, cancel := opCtx(c, h.Timeout)
	defer cancel()
	res, err := h.Catalog.DeleteCategory(ctx, id)
	if err != nil {
		return err
	}
	applog.Audit(c, "category.delete", map[string]any{"id": id, "deleted": res.DeletedCount})
	return c.JSON(res)
}
