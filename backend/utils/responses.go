package utils

import "github.com/gofiber/fiber/v2"

// Message sends a JSON body holding only a message string.
func Message(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
	})
}

// FieldError sends a 400 naming the offending input field.
func FieldError(c *fiber.Ctx, message, field string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
		"field":   field,
	})
}
