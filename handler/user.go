package handler

import (
	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

func GetProfile(c *fiber.Ctx) error {
	claim := helper.GetInfoUserFromToken(c)

	var user model.User
	if err := database.DB.First(&user, claim.UserId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.USER_NOT_FOUND, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

func UpdateProfile(c *fiber.Ctx) error {
	input := c.Locals("input").(model.UpdateProfileInput)
	claim := helper.GetInfoUserFromToken(c)

	db := database.DB

	var user model.User
	if err := db.First(&user, claim.UserId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.USER_NOT_FOUND, err)
	}

	if input.Email != nil && *input.Email != user.Email {
		existing, err := helper.GetUserByEmail(*input.Email)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if existing != nil {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Email already registered", nil)
		}
	}

	copier.CopyWithOption(&user, &input, copier.Option{IgnoreEmpty: true})

	if err := db.Save(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

func UpdatePassword(c *fiber.Ctx) error {
	input := c.Locals("input").(model.UpdatePasswordInput)
	claim := helper.GetInfoUserFromToken(c)

	db := database.DB

	var user model.User
	if err := db.First(&user, claim.UserId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.USER_NOT_FOUND, err)
	}

	if !helper.CheckPasswordHash(input.CurrentPassword, user.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Current password is incorrect", nil)
	}

	hash, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := db.Model(&user).Update("password", hash).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Password updated successfully"})
}

// UploadAvatar stores the uploaded image and saves its URL on the profile.
func UploadAvatar(c *fiber.Ctx) error {
	claim := helper.GetInfoUserFromToken(c)

	file, err := c.FormFile("avatar")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Avatar file is required", err)
	}

	url, err := helper.UploadImage(c.Context(), file, "avatars")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save image file", err)
	}

	if err := database.DB.Model(&model.User{}).
		Where("id = ?", claim.UserId).
		Update("avatar", url).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Avatar updated successfully",
		"avatar":  url,
	})
}

func GetUserById(c *fiber.Ctx) error {
	userId := c.Locals("inputId").(uint)
	claim := helper.GetInfoUserFromToken(c)

	if claim.UserId != userId && claim.Role != constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Not authorized", nil)
	}

	var user model.User
	if err := database.DB.First(&user, userId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.USER_NOT_FOUND, err)
	}

	return c.Status(fiber.StatusOK).JSON(user)
}
