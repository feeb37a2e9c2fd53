package validate

import (
	"event_ticketing/model"

	"github.com/gofiber/fiber/v2"
)

func BookTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return body[model.BookTicketInput](c, "input")
	}
}

func CancelTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return body[model.CancelTicketInput](c, "input")
	}
}
