package validate

import (
	"event_ticketing/model"

	"github.com/gofiber/fiber/v2"
)

func ProcessPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return body[model.ProcessPaymentInput](c, "input")
	}
}

func Refund() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return body[model.RefundInput](c, "input")
	}
}
