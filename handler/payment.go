package handler

import (
	"fmt"
	"time"

	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gatewayResult struct {
	Success       bool
	TransactionId string
}

// processGatewayPayment stands in for a real payment provider. It always
// approves and fabricates a transaction id.
func processGatewayPayment(amount float64) gatewayResult {
	_ = amount
	return gatewayResult{
		Success:       true,
		TransactionId: "txn_" + uuid.NewString(),
	}
}

// processGatewayRefund likewise always approves.
func processGatewayRefund(transactionId string) gatewayResult {
	_ = transactionId
	return gatewayResult{
		Success:       true,
		TransactionId: fmt.Sprintf("ref_%d", time.Now().UnixMilli()),
	}
}

// ProcessPayment charges for the requested seats and issues the ticket in the
// same transaction the seats are reserved in.
func ProcessPayment(c *fiber.Ctx) error {
	input := c.Locals("input").(model.ProcessPaymentInput)
	claim := helper.GetInfoUserFromToken(c)

	db := database.DB

	var event model.Event
	if err := db.First(&event, input.EventId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EVENT_NOT_FOUND, err)
	}

	if event.AvailableSeats < input.Seats {
		return utils.ErrorResponse(c, fiber.StatusBadRequest,
			fmt.Sprintf("Only %d seats remaining", event.AvailableSeats), nil)
	}

	amount := event.TicketPrice * float64(input.Seats)
	gateway := processGatewayPayment(amount)
	if !gateway.Success {
		payment := model.Payment{
			UserId:        claim.UserId,
			EventId:       event.ID,
			Amount:        amount,
			Status:        constants.PaymentFailed,
			TransactionId: gateway.TransactionId,
		}
		db.Create(&payment)
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "Payment was declined", nil)
	}

	var payment model.Payment
	var ticket model.Ticket
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := helper.ReserveSeats(tx, event.ID, input.Seats); err != nil {
			return err
		}
		payment = model.Payment{
			UserId:        claim.UserId,
			EventId:       event.ID,
			Amount:        amount,
			Status:        constants.PaymentSuccess,
			TransactionId: gateway.TransactionId,
		}
		if err := tx.Create(&payment).Error; err != nil {
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
	if err != nil {
		if err == helper.ErrInsufficientSeats {
			db.First(&event, event.ID)
			return utils.ErrorResponse(c, fiber.StatusBadRequest,
				fmt.Sprintf("Only %d seats remaining", event.AvailableSeats), nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	ticket.QRCode = utils.TicketQRURL(ticket.ID)
	BroadcastEventSeats(event.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Payment processed successfully",
		"payment": payment,
		"ticket":  ticket,
	})
}

// ProcessRefund refunds a confirmed ticket's payment and cancels the ticket,
// releasing its seats.
func ProcessRefund(c *fiber.Ctx) error {
	input := c.Locals("input").(model.RefundInput)
	claim := helper.GetInfoUserFromToken(c)

	db := database.DB

	var ticket model.Ticket
	if err := db.Preload("Event").First(&ticket, input.TicketId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.TICKET_NOT_FOUND, err)
	}

	if ticket.UserId != claim.UserId && claim.Role != constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Not authorized to refund this ticket", nil)
	}
	if ticket.Status != constants.TicketConfirmed {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Ticket already cancelled", nil)
	}

	var payment model.Payment
	if err := db.Where("user_id = ? AND event_id = ? AND status = ?",
		ticket.UserId, ticket.EventId, constants.PaymentSuccess).
		Order("created_at desc").First(&payment).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "No payment found for this ticket", err)
	}

	gateway := processGatewayRefund(payment.TransactionId)

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Ticket{}).
			Where("id = ? AND status = ?", ticket.ID, constants.TicketConfirmed).
			Updates(map[string]any{
				"status":       constants.TicketRefunded,
				"cancelled_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("ticket %d is no longer refundable", ticket.ID)
		}
		if err := tx.Model(&payment).Update("status", constants.PaymentRefunded).Error; err != nil {
			return err
		}
		return helper.ReleaseSeats(tx, ticket.EventId, ticket.Seats)
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	BroadcastEventSeats(ticket.EventId)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":       "Refund processed successfully",
		"refundId":      gateway.TransactionId,
		"amount":        payment.Amount,
		"releasedSeats": ticket.Seats,
	})
}
