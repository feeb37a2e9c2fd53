package validate

import (
	"event_ticketing/constants"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateEventInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "All fields are required", err)
		}
		if _, err := helper.ParseEventDate(input.Date); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid date format", err)
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func UpdateEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateEventInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}
		if input.Date != nil {
			if _, err := helper.ParseEventDate(*input.Date); err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid date format", err)
			}
		}
		c.Locals("input", input)
		return c.Next()
	}
}
