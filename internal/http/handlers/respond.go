package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"kidzplay/internal/domain"
	applog "kidzplay/internal/log"
	"kidzplay/internal/repos"
	"kidzplay/internal/services"
)

const defaultOpTimeout = 10 * time.Second

// errorBody is the envelope every rejected request gets.
func errorBody(msg string) fiber.Map {
	return fiber.Map{"error": true, "message": msg}
}

// opCtx bounds a single store or processor call.
func opCtx(c *fiber.Ctx, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = defaultOpTimeout
	}
	return context.WithTimeout(c.UserContext(), d)
}

// bodyDoc decodes the request body as a JSON object.
func bodyDoc(c *fiber.Ctx) (domain.Document, error) {
	var doc domain.Document
	if err := json.Unmarshal(c.Body(), &doc); err != nil || doc == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "request body must be a JSON object")
	}
	return doc, nil
}

// ErrorHandler renders every error as the JSON envelope. Anything that is not
// a client error is logged and reported without internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		if fe.Code >= fiber.StatusInternalServerError {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fe.Code).JSON(errorBody("internal server error"))
		}
		return c.Status(fe.Code).JSON(errorBody(fe.Message))
	case errors.Is(err, repos.ErrInvalidID):
		return c.Status(fiber.StatusBadRequest).JSON(errorBody("invalid id"))
	case errors.Is(err, services.ErrInvalidPrice):
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(services.ErrInvalidPrice.Error()))
	}
	applog.Error(c, "server.error", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(errorBody("internal server error"))
}
