package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"kidzplay/internal/http/handlers"
	applog "kidzplay/internal/log"
)

const Liveness = "kidzplay server is running......"

// New builds the app with middleware and the full route table.
func New(deps *handlers.Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "kidzplay",
		BodyLimit:    1 << 20, // 1 MiB
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New())

	Routes(app, deps)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": true, "message": "not found"})
	})
	return app
}

func Routes(app fiber.Router, d *handlers.Deps) {
	gate := handlers.RequireIdentity(d.Tokens)

	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(Liveness) })
	app.Get("/healthz", health(d))

	// categories
	app.Get("/categorys", d.CategoryHandler.List)
	app.Post("/categorys", d.CategoryHandler.Create)
	app.Put("/categorys/:id", d.CategoryHandler.Replace)
	app.Delete("/categorys/:id", d.CategoryHandler.Delete)

	// toys
	app.Get("/mytoys", gate, d.ToyHandler.Mine)
	app.Get("/toys", d.ToyHandler.List)
	app.Get("/toys/:id", d.ToyHandler.Detail)
	app.Get("/toy", d.ToyHandler.BySubCategory)
	app.Get("/search", d.SearchHandler.Search)
	app.Post("/toys", d.ToyHandler.Create)
	app.Put("/toys/:id", d.ToyHandler.Replace)
	app.Delete("/toys/:id", d.ToyHandler.Delete)

	app.Post("/jwt", d.AuthHandler.Issue)

	// cart
	app.Get("/carts", gate, d.CartHandler.List)
	app.Post("/carts", d.CartHandler.Add)
	app.Delete("/carts/:id", d.CartHandler.Remove)

	app.Post("/create-payment-intent", d.PaymentHandler.CreateIntent)
}

func health(d *handlers.Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := d.Store.Ping(ctx); err != nil {
			applog.Error(c, "health.store.fail", err, nil)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"ok": false})
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}
