package handler

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

const recommendedCacheKey = "events:recommended"

// CreateEvent persists a new event for the requesting organizer. The seat
// inventory starts full: availableSeats == totalSeats.
func CreateEvent(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateEventInput)
	claim := helper.GetInfoUserFromToken(c)

	date, err := helper.ParseEventDate(input.Date)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid date format", err)
	}

	var event model.Event
	copier.Copy(&event, &input)
	event.Date = date
	event.AvailableSeats = input.TotalSeats
	event.OrganizerId = claim.UserId
	event.Slug = helper.GenerateUniqueEventSlug(database.DB, input.Name)

	if file, err := c.FormFile("image"); err == nil && file != nil {
		url, err := helper.UploadImage(c.Context(), file, "events")
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save image file", err)
		}
		event.Image = &url
	}

	if err := database.DB.Create(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.Status(fiber.StatusCreated).JSON(event)
}

// GetEvents lists events, soonest first. Authenticated organizers only see
// their own.
func GetEvents(c *fiber.Ctx) error {
	claim := helper.GetInfoUserFromToken(c)

	filter := new(model.FilterEventInput)
	if err := c.QueryParser(filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	query := database.DB.Preload("Organizer")
	if claim.Role == constants.ROLE_ORGANIZER {
		query = query.Where("organizer_id = ?", claim.UserId)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.From != "" {
		if from, err := helper.ParseEventDate(filter.From); err == nil {
			query = query.Where("date >= ?", from)
		}
	}
	if filter.To != "" {
		if to, err := helper.ParseEventDate(filter.To); err == nil {
			query = query.Where("date <= ?", to)
		}
	}

	var events []model.Event
	query = utils.ApplyPagination(query, filter.Limit, filter.Page)
	if err := query.Order("date asc").Find(&events).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Error fetching events", err)
	}

	message := "Events retrieved successfully"
	if len(events) == 0 {
		message = "No events found"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"count":   len(events),
		"events":  events,
	})
}

// GetMyEvents lists the requesting organizer's events, newest first.
func GetMyEvents(c *fiber.Ctx) error {
	claim := helper.GetInfoUserFromToken(c)

	if claim.Role != constants.ROLE_ORGANIZER {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "No events found for this user",
			"events":  []model.Event{},
		})
	}

	var events []model.Event
	if err := database.DB.Preload("Organizer").
		Where("organizer_id = ?", claim.UserId).
		Order("created_at desc").
		Find(&events).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Error fetching events", err)
	}

	message := "Events retrieved successfully"
	if len(events) == 0 {
		message = "No events found"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": message,
		"events":  events,
	})
}

func GetEventById(c *fiber.Ctx) error {
	eventId := c.Locals("inputId").(uint)

	var event model.Event
	if err := database.DB.Preload("Organizer").First(&event, eventId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
	}

	return c.Status(fiber.StatusOK).JSON(event)
}

func GetEventBySlug(c *fiber.Ctx) error {
	var event model.Event
	if err := database.DB.Preload("Organizer").
		Where("slug = ?", c.Params("slug")).
		First(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
	}

	return c.Status(fiber.StatusOK).JSON(event)
}

// UpdateEvent edits an event owned by the requester (admins may edit any).
// When totalSeats changes, availableSeats is recomputed from the confirmed
// ticket total so existing sales stay accounted for.
func UpdateEvent(c *fiber.Ctx) error {
	eventId := c.Locals("inputId").(uint)
	input := c.Locals("input").(model.UpdateEventInput)
	claim := helper.GetInfoUserFromToken(c)

	db := database.DB

	var event model.Event
	if err := db.First(&event, eventId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
	}

	if event.OrganizerId != claim.UserId && claim.Role != constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Not authorized to update this event", nil)
	}

	copier.CopyWithOption(&event, &input, copier.Option{IgnoreEmpty: true})
	if input.Date != nil {
		date, err := helper.ParseEventDate(*input.Date)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid date format", err)
		}
		event.Date = date
	}

	if input.TotalSeats != nil {
		sold, err := helper.ConfirmedSeatCount(db, event.ID)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if *input.TotalSeats < sold {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Total seats cannot be lower than seats already sold", nil)
		}
		event.TotalSeats = *input.TotalSeats
		event.AvailableSeats = *input.TotalSeats - sold
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		url, err := helper.UploadImage(c.Context(), file, "events")
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save image file", err)
		}
		event.Image = &url
	}

	if err := db.Save(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.Status(fiber.StatusOK).JSON(event)
}

// DeleteEvent removes an event that has no tickets against it.
func DeleteEvent(c *fiber.Ctx) error {
	eventId := c.Locals("inputId").(uint)
	claim := helper.GetInfoUserFromToken(c)

	db := database.DB

	var event model.Event
	if err := db.First(&event, eventId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
	}

	if event.OrganizerId != claim.UserId && claim.Role != constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Not authorized to delete this event", nil)
	}

	var ticketCount int64
	if err := db.Model(&model.Ticket{}).Where("event_id = ?", event.ID).Count(&ticketCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if ticketCount > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message":     "Cannot delete event with existing tickets",
			"ticketCount": ticketCount,
		})
	}

	if err := db.Delete(&event).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Event deleted successfully"})
}

func GetEventsByCategory(c *fiber.Ctx) error {
	var events []model.Event
	if err := database.DB.
		Where("category = ?", c.Params("category")).
		Order("date asc").
		Find(&events).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.Status(fiber.StatusOK).JSON(events)
}

// GetRecommendedEvents returns the next six upcoming events, cached in Redis
// for a minute.
func GetRecommendedEvents(c *fiber.Ctx) error {
	ctx := context.Background()

	if database.Redis != nil {
		if cached, err := database.Redis.Get(ctx, recommendedCacheKey).Bytes(); err == nil {
			var events []model.Event
			if json.Unmarshal(cached, &events) == nil {
				return c.Status(fiber.StatusOK).JSON(events)
			}
		}
	}

	var events []model.Event
	if err := database.DB.
		Where("date >= ?", time.Now()).
		Order("date asc").
		Limit(6).
		Find(&events).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if database.Redis != nil {
		if payload, err := json.Marshal(events); err == nil {
			database.Redis.Set(ctx, recommendedCacheKey, payload, time.Minute)
		}
	}

	return c.Status(fiber.StatusOK).JSON(events)
}

// GetEventStats reports ticket statistics for one event, or across all of the
// organizer's events when no id is given.
func GetEventStats(c *fiber.Ctx) error {
	claim := helper.GetInfoUserFromToken(c)
	db := database.DB

	if eventIdStr := c.Query("eventId"); eventIdStr != "" {
		var event model.Event
		if err := db.First(&event, eventIdStr).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
		}

		var tickets []model.Ticket
		if err := db.Preload("User").Where("event_id = ?", event.ID).Find(&tickets).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}

		var sold, cancelled int
		var revenue float64
		attendees := []fiber.Map{}
		for _, t := range tickets {
			switch t.Status {
			case constants.TicketConfirmed:
				sold++
				revenue += event.TicketPrice * float64(t.Seats)
				attendees = append(attendees, fiber.Map{
					"name":  t.User.Name,
					"email": t.User.Email,
				})
			case constants.TicketCancelled:
				cancelled++
			}
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"totalTickets":     len(tickets),
			"soldTickets":      sold,
			"cancelledTickets": cancelled,
			"revenue":          revenue,
			"attendees":        attendees,
		})
	}

	var events []model.Event
	if err := db.Where("organizer_id = ?", claim.UserId).Find(&events).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	summary := make([]fiber.Map, 0, len(events))
	var ticketsSold int64
	var totalRevenue float64
	for _, event := range events {
		sold, err := helper.ConfirmedSeatCount(db, event.ID)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		var confirmed int64
		db.Model(&model.Ticket{}).
			Where("event_id = ? AND status = ?", event.ID, constants.TicketConfirmed).
			Count(&confirmed)
		ticketsSold += confirmed
		totalRevenue += event.TicketPrice * float64(sold)

		summary = append(summary, fiber.Map{
			"id":             event.ID,
			"name":           event.Name,
			"totalSeats":     event.TotalSeats,
			"availableSeats": event.AvailableSeats,
			"ticketsSold":    confirmed,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"totalEvents":  len(events),
		"ticketsSold":  ticketsSold,
		"totalRevenue": totalRevenue,
		"events":       summary,
	})
}

// GetDashboardData powers the admin dashboard: the coming week, nearly sold
// out events, and the most booked ones.
func GetDashboardData(c *fiber.Ctx) error {
	db := database.DB
	now := time.Now()

	var upcoming []model.Event
	if err := db.Where("date BETWEEN ? AND ?", now, now.AddDate(0, 0, 7)).
		Order("date asc").Limit(5).Find(&upcoming).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// Less than 20% of capacity remaining.
	var lowAvailability []model.Event
	if err := db.Where("available_seats * 5 < total_seats").
		Limit(5).Find(&lowAvailability).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	type popularRow struct {
		EventId uint
		Count   int64
	}
	var popular []popularRow
	if err := db.Model(&model.Ticket{}).
		Select("event_id, COUNT(*) as count").
		Group("event_id").
		Order("count desc").
		Limit(5).
		Scan(&popular).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	popularEvents := make([]fiber.Map, 0, len(popular))
	for _, row := range popular {
		var event model.Event
		if err := db.First(&event, row.EventId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		popularEvents = append(popularEvents, fiber.Map{
			"event":       event,
			"ticketCount": row.Count,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"upcomingEvents":        upcoming,
		"lowAvailabilityEvents": lowAvailability,
		"popularEvents":         popularEvents,
	})
}
