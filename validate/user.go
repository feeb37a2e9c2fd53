package validate

import (
	"event_ticketing/model"

	"github.com/gofiber/fiber/v2"
)

func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return body[model.RegisterInput](c, "input")
	}
}

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return body[model.LoginInput](c, "input")
	}
}

func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return body[model.UpdateProfileInput](c, "input")
	}
}

func UpdatePassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return body[model.UpdatePasswordInput](c, "input")
	}
}

func ForgotPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return body[model.ForgotPasswordInput](c, "input")
	}
}

func ResetPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return body[model.ResetPasswordInput](c, "input")
	}
}
