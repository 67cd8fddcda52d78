package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

func success(c *fiber.Ctx, data fiber.Map) error {
	return c.JSON(data)
}

func created(c *fiber.Ctx, data fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func validationFailed(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "Validation failed",
		"details": err,
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": message})
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestID").(string); ok {
		return id
	}
	return ""
}

func gatewayTimeout(c *fiber.Ctx, message string, err error) error {
	reqID := requestID(c)

	slog.Warn("note task timed out",
		"request_id", reqID,
		"method", c.Method(),
		"path", c.Path(),
		"error", err,
	)

	return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{
		"error":      message,
		"request_id": reqID,
	})
}

func serverErrorWithDetails(c *fiber.Ctx, message string, err error) error {
	reqID := requestID(c)

	slog.Error("server error",
		"request_id", reqID,
		"method", c.Method(),
		"path", c.Path(),
		"message", message,
		"error", err,
	)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":      message,
		"request_id": reqID,
	})
}
