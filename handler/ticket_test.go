package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/helper"
	"event_ticketing/middleware"
	"event_ticketing/model"
	"event_ticketing/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	// A named shared-cache DSN keeps every pooled connection on the same
	// in-memory database, one per test.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.Migrate(db)
	database.DB = db
}

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	setupTestDB(t)

	app := fiber.New()
	app.Post("/api/tickets", middleware.Protected(), validate.BookTicket(), BookTicket)
	app.Post("/api/tickets/cancel", middleware.Protected(), validate.CancelTicket(), CancelTicket)
	app.Get("/api/tickets/my-tickets", middleware.Protected(), GetMyTickets)
	app.Get("/api/tickets/:id", middleware.OptionalJWT(), validate.GetById("id"), GetTicketById)
	return app
}

func createTestUser(t *testing.T, name, email, role string) model.User {
	t.Helper()
	hash, err := helper.HashPassword("secret123")
	require.NoError(t, err)
	user := model.User{Name: name, Email: email, Password: hash, Role: role}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func createTestEvent(t *testing.T, organizerId uint, date time.Time, totalSeats int) model.Event {
	t.Helper()
	event := model.Event{
		Name:           "Test Festival",
		Slug:           fmt.Sprintf("test-festival-%d", time.Now().UnixNano()),
		Date:           date,
		Time:           "19:00",
		Location:       "City Arena",
		Category:       "music",
		TicketPrice:    100,
		TotalSeats:     totalSeats,
		AvailableSeats: totalSeats,
		OrganizerId:    organizerId,
	}
	require.NoError(t, database.DB.Create(&event).Error)
	return event
}

func authToken(t *testing.T, user model.User) string {
	t.Helper()
	token, err := helper.GenerateAccessToken(model.TokenClaim{UserId: user.ID, Role: user.Role})
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp, parsed
}

func TestBookTicket_Success(t *testing.T) {
	app := setupTestApp(t)
	organizer := createTestUser(t, "Org", "org@test.io", constants.ROLE_ORGANIZER)
	customer := createTestUser(t, "Cus", "cus@test.io", constants.ROLE_CUSTOMER)
	event := createTestEvent(t, organizer.ID, time.Now().AddDate(0, 0, 10), 10)

	resp, body := doJSON(t, app, "POST", "/api/tickets", authToken(t, customer),
		fiber.Map{"eventId": event.ID, "seats": 3})

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Booking confirmed", body["message"])

	ticket := body["ticket"].(map[string]any)
	assert.Equal(t, constants.TicketConfirmed, ticket["status"])
	assert.Equal(t, float64(3), ticket["seats"])
	assert.Contains(t, ticket["qrCode"], "create-qr-code")

	var got model.Event
	require.NoError(t, database.DB.First(&got, event.ID).Error)
	assert.Equal(t, 7, got.AvailableSeats)
}

func TestBookTicket_InsufficientSeats(t *testing.T) {
	app := setupTestApp(t)
	organizer := createTestUser(t, "Org", "org@test.io", constants.ROLE_ORGANIZER)
	customer := createTestUser(t, "Cus", "cus@test.io", constants.ROLE_CUSTOMER)
	event := createTestEvent(t, organizer.ID, time.Now().AddDate(0, 0, 10), 10)

	resp, body := doJSON(t, app, "POST", "/api/tickets", authToken(t, customer),
		fiber.Map{"eventId": event.ID, "seats": 11})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Only 10 seats remaining", body["message"])

	var got model.Event
	require.NoError(t, database.DB.First(&got, event.ID).Error)
	assert.Equal(t, 10, got.AvailableSeats)
}

func TestBookTicket_EventNotFound(t *testing.T) {
	app := setupTestApp(t)
	customer := createTestUser(t, "Cus", "cus@test.io", constants.ROLE_CUSTOMER)

	resp, body := doJSON(t, app, "POST", "/api/tickets", authToken(t, customer),
		fiber.Map{"eventId": 999, "seats": 1})

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, constants.EVENT_NOT_FOUND, body["message"])
}

func TestBookTicket_Unauthenticated(t *testing.T) {
	app := setupTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/tickets", "",
		fiber.Map{"eventId": 1, "seats": 1})

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCancelTicket_FreeOutsideFeeWindow(t *testing.T) {
	app := setupTestApp(t)
	organizer := createTestUser(t, "Org", "org@test.io", constants.ROLE_ORGANIZER)
	customer := createTestUser(t, "Cus", "cus@test.io", constants.ROLE_CUSTOMER)
	event := createTestEvent(t, organizer.ID, time.Now().AddDate(0, 0, 5), 10)

	_, booked := doJSON(t, app, "POST", "/api/tickets", authToken(t, customer),
		fiber.Map{"eventId": event.ID, "seats": 3})
	ticketId := uint(booked["ticket"].(map[string]any)["id"].(float64))

	resp, body := doJSON(t, app, "POST", "/api/tickets/cancel", authToken(t, customer),
		fiber.Map{"ticketId": ticketId})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ticket cancelled successfully", body["message"])
	assert.Equal(t, float64(0), body["cancellationFee"])
	assert.Equal(t, float64(3), body["releasedSeats"])
	assert.True(t, strings.HasPrefix(body["refundId"].(string), "ref_"))

	var got model.Event
	require.NoError(t, database.DB.First(&got, event.ID).Error)
	assert.Equal(t, 10, got.AvailableSeats)

	var ticket model.Ticket
	require.NoError(t, database.DB.First(&ticket, ticketId).Error)
	assert.Equal(t, constants.TicketCancelled, ticket.Status)
	assert.NotNil(t, ticket.CancelledAt)
}

func TestCancelTicket_FeeInsideWindow(t *testing.T) {
	app := setupTestApp(t)
	organizer := createTestUser(t, "Org", "org@test.io", constants.ROLE_ORGANIZER)
	customer := createTestUser(t, "Cus", "cus@test.io", constants.ROLE_CUSTOMER)
	// Two days out: cancellable, but inside the fee window.
	event := createTestEvent(t, organizer.ID, time.Now().Add(48*time.Hour), 10)

	_, booked := doJSON(t, app, "POST", "/api/tickets", authToken(t, customer),
		fiber.Map{"eventId": event.ID, "seats": 2})
	ticketId := uint(booked["ticket"].(map[string]any)["id"].(float64))

	resp, body := doJSON(t, app, "POST", "/api/tickets/cancel", authToken(t, customer),
		fiber.Map{"ticketId": ticketId})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, constants.CancellationFlatFee, body["cancellationFee"])
}

func TestCancelTicket_PastDeadline(t *testing.T) {
	app := setupTestApp(t)
	organizer := createTestUser(t, "Org", "org@test.io", constants.ROLE_ORGANIZER)
	customer := createTestUser(t, "Cus", "cus@test.io", constants.ROLE_CUSTOMER)
	event := createTestEvent(t, organizer.ID, time.Now().Add(12*time.Hour), 10)

	_, booked := doJSON(t, app, "POST", "/api/tickets", authToken(t, customer),
		fiber.Map{"eventId": event.ID, "seats": 2})
	ticketId := uint(booked["ticket"].(map[string]any)["id"].(float64))

	resp, body := doJSON(t, app, "POST", "/api/tickets/cancel", authToken(t, customer),
		fiber.Map{"ticketId": ticketId})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Cancellations must be made 24 hours before the event", body["message"])
	assert.NotEmpty(t, body["deadline"])

	// Seats stay reserved.
	var got model.Event
	require.NoError(t, database.DB.First(&got, event.ID).Error)
	assert.Equal(t, 8, got.AvailableSeats)
}

func TestCancelTicket_TwiceDoesNotDoubleRelease(t *testing.T) {
	app := setupTestApp(t)
	organizer := createTestUser(t, "Org", "org@test.io", constants.ROLE_ORGANIZER)
	customer := createTestUser(t, "Cus", "cus@test.io", constants.ROLE_CUSTOMER)
	event := createTestEvent(t, organizer.ID, time.Now().AddDate(0, 0, 10), 10)

	_, booked := doJSON(t, app, "POST", "/api/tickets", authToken(t, customer),
		fiber.Map{"eventId": event.ID, "seats": 4})
	ticketId := uint(booked["ticket"].(map[string]any)["id"].(float64))

	first, _ := doJSON(t, app, "POST", "/api/tickets/cancel", authToken(t, customer),
		fiber.Map{"ticketId": ticketId})
	second, body := doJSON(t, app, "POST", "/api/tickets/cancel", authToken(t, customer),
		fiber.Map{"ticketId": ticketId})

	assert.Equal(t, fiber.StatusOK, first.StatusCode)
	assert.Equal(t, fiber.StatusBadRequest, second.StatusCode)
	assert.Equal(t, "Ticket already cancelled", body["message"])

	var got model.Event
	require.NoError(t, database.DB.First(&got, event.ID).Error)
	assert.Equal(t, 10, got.AvailableSeats)
}

func TestCancelTicket_NotOwner(t *testing.T) {
	app := setupTestApp(t)
	organizer := createTestUser(t, "Org", "org@test.io", constants.ROLE_ORGANIZER)
	customer := createTestUser(t, "Cus", "cus@test.io", constants.ROLE_CUSTOMER)
	other := createTestUser(t, "Other", "other@test.io", constants.ROLE_CUSTOMER)
	event := createTestEvent(t, organizer.ID, time.Now().AddDate(0, 0, 10), 10)

	_, booked := doJSON(t, app, "POST", "/api/tickets", authToken(t, customer),
		fiber.Map{"eventId": event.ID, "seats": 2})
	ticketId := uint(booked["ticket"].(map[string]any)["id"].(float64))

	resp, _ := doJSON(t, app, "POST", "/api/tickets/cancel", authToken(t, other),
		fiber.Map{"ticketId": ticketId})

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestCancelTicket_AdminMayCancelAny(t *testing.T) {
	app := setupTestApp(t)
	organizer := createTestUser(t, "Org", "org@test.io", constants.ROLE_ORGANIZER)
	customer := createTestUser(t, "Cus", "cus@test.io", constants.ROLE_CUSTOMER)
	admin := createTestUser(t, "Admin", "admin@test.io", constants.ROLE_ADMIN)
	event := createTestEvent(t, organizer.ID, time.Now().AddDate(0, 0, 10), 10)

	_, booked := doJSON(t, app, "POST", "/api/tickets", authToken(t, customer),
		fiber.Map{"eventId": event.ID, "seats": 2})
	ticketId := uint(booked["ticket"].(map[string]any)["id"].(float64))

	resp, _ := doJSON(t, app, "POST", "/api/tickets/cancel", authToken(t, admin),
		fiber.Map{"ticketId": ticketId})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGetMyTickets(t *testing.T) {
	app := setupTestApp(t)
	organizer := createTestUser(t, "Org", "org@test.io", constants.ROLE_ORGANIZER)
	customer := createTestUser(t, "Cus", "cus@test.io", constants.ROLE_CUSTOMER)
	event := createTestEvent(t, organizer.ID, time.Now().AddDate(0, 0, 10), 10)

	doJSON(t, app, "POST", "/api/tickets", authToken(t, customer),
		fiber.Map{"eventId": event.ID, "seats": 1})
	doJSON(t, app, "POST", "/api/tickets", authToken(t, customer),
		fiber.Map{"eventId": event.ID, "seats": 2})

	req := httptest.NewRequest("GET", "/api/tickets/my-tickets", nil)
	req.Header.Set("Authorization", "Bearer "+authToken(t, customer))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var tickets []map[string]any
	require.NoError(t, json.Unmarshal(raw, &tickets))
	assert.Len(t, tickets, 2)
	assert.Contains(t, tickets[0]["qrCode"], "create-qr-code")
}

func TestGetTicketById_RedactsForStrangers(t *testing.T) {
	app := setupTestApp(t)
	organizer := createTestUser(t, "Org", "org@test.io", constants.ROLE_ORGANIZER)
	customer := createTestUser(t, "Cus", "cus@test.io", constants.ROLE_CUSTOMER)
	event := createTestEvent(t, organizer.ID, time.Now().AddDate(0, 0, 10), 10)

	_, booked := doJSON(t, app, "POST", "/api/tickets", authToken(t, customer),
		fiber.Map{"eventId": event.ID, "seats": 2})
	ticketId := uint(booked["ticket"].(map[string]any)["id"].(float64))

	// Anonymous lookup gets event metadata but no user identity.
	resp, body := doJSON(t, app, "GET", fmt.Sprintf("/api/tickets/%d", ticketId), "", nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "userId")
	assert.NotContains(t, body, "user")
	assert.NotContains(t, body, "qrCode")
	assert.Equal(t, "Test Festival", body["event"].(map[string]any)["name"])
	assert.Equal(t, float64(2), body["seats"])
}

func TestGetTicketById_FullViewForOwner(t *testing.T) {
	app := setupTestApp(t)
	organizer := createTestUser(t, "Org", "org@test.io", constants.ROLE_ORGANIZER)
	customer := createTestUser(t, "Cus", "cus@test.io", constants.ROLE_CUSTOMER)
	event := createTestEvent(t, organizer.ID, time.Now().AddDate(0, 0, 10), 10)

	_, booked := doJSON(t, app, "POST", "/api/tickets", authToken(t, customer),
		fiber.Map{"eventId": event.ID, "seats": 2})
	ticketId := uint(booked["ticket"].(map[string]any)["id"].(float64))

	resp, body := doJSON(t, app, "GET", fmt.Sprintf("/api/tickets/%d", ticketId),
		authToken(t, customer), nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(customer.ID), body["userId"])
	assert.Contains(t, body["qrCode"], "create-qr-code")
}
