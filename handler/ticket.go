package handler

import (
	"errors"
	"fmt"
	"time"

	"event_ticketing/config"
	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BookTicket reserves seats and issues a confirmed ticket.
//
// The seat decrement is a conditional UPDATE inside the transaction, so two
// competing bookings for the last seats cannot both succeed: the loser sees
// zero affected rows and the request is rejected with the remaining count.
func BookTicket(c *fiber.Ctx) error {
	input := c.Locals("input").(model.BookTicketInput)
	claim := helper.GetInfoUserFromToken(c)

	db := database.DB

	var event model.Event
	if err := db.First(&event, input.EventId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Booking failed", err)
	}

	// Early reject with the current count; the reserve below still guards
	// against races that slip past this check.
	if event.AvailableSeats < input.Seats {
		return utils.ErrorResponse(c, fiber.StatusBadRequest,
			fmt.Sprintf("Only %d seats remaining", event.AvailableSeats), nil)
	}

	var ticket model.Ticket
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := helper.ReserveSeats(tx, event.ID, input.Seats); err != nil {
			return err
		}
		ticket = model.Ticket{
			EventId: event.ID,
			UserId:  claim.UserId,
			Seats:   input.Seats,
			Status:  constants.TicketConfirmed,
		}
		return tx.Create(&ticket).Error
	})
	if errors.Is(err, helper.ErrInsufficientSeats) {
		db.First(&event, event.ID)
		return utils.ErrorResponse(c, fiber.StatusBadRequest,
			fmt.Sprintf("Only %d seats remaining", event.AvailableSeats), nil)
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Booking failed", err)
	}

	if err := db.Preload("Event").Preload("User").First(&ticket, ticket.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Booking failed", err)
	}
	ticket.QRCode = utils.TicketQRURL(ticket.ID)

	BroadcastEventSeats(event.ID)

	// Best effort: a failed mail never rolls back a booking.
	if ticket.User.Email != "" {
		utils.SendTicketConfirmationEmail(ticket.User.Email, utils.TicketEmailData{
			UserName:    ticket.User.Name,
			EventName:   ticket.Event.Name,
			EventDate:   ticket.Event.Date.Format("02 Jan 2006"),
			EventTime:   ticket.Event.Time,
			Location:    ticket.Event.Location,
			Seats:       ticket.Seats,
			TotalAmount: ticket.Event.TicketPrice * float64(ticket.Seats),
			TicketId:    ticket.ID,
			TicketLink:  fmt.Sprintf("%s/tickets/%d", config.ConfigOr("FRONTEND_URL", "http://localhost:3000"), ticket.ID),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Booking confirmed",
		"ticket":  ticket,
	})
}

// CancelTicket flips a confirmed ticket to cancelled and returns its seats to
// the event.
//
// The status flip is conditional on the ticket still being confirmed, so a
// second cancellation of the same ticket cannot release the seats twice.
func CancelTicket(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CancelTicketInput)
	claim := helper.GetInfoUserFromToken(c)

	db := database.DB

	var ticket model.Ticket
	if err := db.Preload("Event").First(&ticket, input.TicketId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TICKET_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cancellation failed", err)
	}

	if ticket.UserId != claim.UserId && claim.Role != constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Not authorized to cancel this ticket", nil)
	}

	if ticket.Status != constants.TicketConfirmed {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Ticket already cancelled", nil)
	}

	now := time.Now()
	deadline := helper.CancellationDeadline(ticket.Event.Date)
	if !helper.CanCancel(ticket.Event.Date, now) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message":  "Cancellations must be made 24 hours before the event",
			"deadline": deadline.UTC().Format(time.RFC3339),
		})
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Conditional flip first: zero rows means someone cancelled in
		// between, and the seats must not be released again.
		res := tx.Model(&model.Ticket{}).
			Where("id = ? AND status = ?", ticket.ID, constants.TicketConfirmed).
			Updates(map[string]interface{}{
				"status":       constants.TicketCancelled,
				"cancelled_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("ticket already cancelled")
		}
		return helper.ReleaseSeats(tx, ticket.EventId, ticket.Seats)
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cancellation failed", err)
	}

	fee := helper.CancellationFee(ticket.Event.Date, now)
	refundId := fmt.Sprintf("ref_%d", now.UnixMilli())

	BroadcastEventSeats(ticket.EventId)

	var user model.User
	if err := db.First(&user, ticket.UserId).Error; err == nil && user.Email != "" {
		utils.SendTicketCancellationEmail(user.Email, utils.TicketEmailData{
			UserName:     user.Name,
			EventName:    ticket.Event.Name,
			EventDate:    ticket.Event.Date.Format("02 Jan 2006"),
			EventTime:    ticket.Event.Time,
			Location:     ticket.Event.Location,
			Seats:        ticket.Seats,
			Fee:          fee,
			RefundAmount: ticket.Event.TicketPrice*float64(ticket.Seats) - fee,
			TicketId:     ticket.ID,
			CancelledAt:  now.Format("02 Jan 2006 15:04"),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":         "Ticket cancelled successfully",
		"refundId":        refundId,
		"releasedSeats":   ticket.Seats,
		"cancellationFee": fee,
	})
}

// GetMyTickets lists the requester's tickets, newest first.
func GetMyTickets(c *fiber.Ctx) error {
	claim := helper.GetInfoUserFromToken(c)

	var tickets []model.Ticket
	if err := database.DB.Preload("Event").
		Where("user_id = ?", claim.UserId).
		Order("created_at desc").
		Find(&tickets).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	for i := range tickets {
		tickets[i].QRCode = utils.TicketQRURL(tickets[i].ID)
	}

	return c.Status(fiber.StatusOK).JSON(tickets)
}

// GetTicketById is public so a scanned QR resolves. Non-owners get a redacted
// view without user PII.
func GetTicketById(c *fiber.Ctx) error {
	ticketId := c.Locals("inputId").(uint)

	var ticket model.Ticket
	if err := database.DB.Preload("Event").Preload("User").
		First(&ticket, ticketId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TICKET_NOT_FOUND, err)
	}

	claim := helper.GetInfoUserFromToken(c)
	if claim.Role == constants.ROLE_ADMIN || (claim.UserId != 0 && claim.UserId == ticket.UserId) {
		ticket.QRCode = utils.TicketQRURL(ticket.ID)
		return c.Status(fiber.StatusOK).JSON(ticket)
	}

	return c.Status(fiber.StatusOK).JSON(ticket.Redact())
}

// GetTicketsByUserId serves a user's tickets to that user or an admin.
func GetTicketsByUserId(c *fiber.Ctx) error {
	userId := c.Locals("inputId").(uint)
	claim := helper.GetInfoUserFromToken(c)

	if claim.Role != constants.ROLE_ADMIN && claim.UserId != userId {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Not authorized", nil)
	}

	var tickets []model.Ticket
	if err := database.DB.Preload("Event").
		Where("user_id = ?", userId).
		Order("created_at desc").
		Find(&tickets).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	for i := range tickets {
		tickets[i].QRCode = utils.TicketQRURL(tickets[i].ID)
	}

	return c.Status(fiber.StatusOK).JSON(tickets)
}
