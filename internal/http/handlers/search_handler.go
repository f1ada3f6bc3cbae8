package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"kidzplay/internal/services"
)

type SearchHandler struct {
	Catalog *services.CatalogService
	Timeout time.Duration
}

// GET /search?toyName= matches names case-insensitively by substring; an
// empty name lists every toy.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.Query("toyName"))
	ctx, cancel := opCtx(c, h.Timeout)
	defer cancel()
	toys, err := h.Catalog.SearchToys(ctx, name)
	if err != nil {
		return err
	}
	return c.JSON(toys)
}
