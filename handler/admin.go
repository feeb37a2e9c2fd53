package handler

import (
	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminGetUsers lists every account, newest first.
func AdminGetUsers(c *fiber.Ctx) error {
	pagination := new(model.Pagination)
	if err := c.QueryParser(pagination); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB

	var totalCount int64
	if err := db.Model(&model.User{}).Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var users model.Users
	query := utils.ApplyPagination(db, pagination.Limit, pagination.Page)
	if err := query.Order("created_at desc").Find(&users).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.Status(fiber.StatusOK).JSON(model.ResponseCustom{
		Rows:       users,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: totalCount,
	})
}

// AdminGetEvents lists every event with its organizer.
func AdminGetEvents(c *fiber.Ctx) error {
	pagination := new(model.Pagination)
	if err := c.QueryParser(pagination); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB

	var totalCount int64
	if err := db.Model(&model.Event{}).Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var events []model.Event
	query := utils.ApplyPagination(db.Preload("Organizer"), pagination.Limit, pagination.Page)
	if err := query.Order("created_at desc").Find(&events).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.Status(fiber.StatusOK).JSON(model.ResponseCustom{
		Rows:       events,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: totalCount,
	})
}

// AdminGetSystemStats aggregates platform-wide counts and revenue.
func AdminGetSystemStats(c *fiber.Ctx) error {
	db := database.DB

	var userCount, eventCount, ticketCount, cancelledCount int64
	if err := db.Model(&model.User{}).Count(&userCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := db.Model(&model.Event{}).Count(&eventCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := db.Model(&model.Ticket{}).Count(&ticketCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := db.Model(&model.Ticket{}).
		Where("status = ?", constants.TicketCancelled).
		Count(&cancelledCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var revenue float64
	if err := db.Model(&model.Payment{}).
		Where("status = ?", constants.PaymentSuccess).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&revenue).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"totalUsers":       userCount,
		"totalEvents":      eventCount,
		"totalTickets":     ticketCount,
		"cancelledTickets": cancelledCount,
		"totalRevenue":     revenue,
	})
}
