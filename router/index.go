package router

import (
	"event_ticketing/constants"
	"event_ticketing/handler"
	"event_ticketing/middleware"
	"event_ticketing/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	auth := api.Group("/auth")
	auth.Post("/register", validate.Register(), handler.Register)
	auth.Post("/login", validate.Login(), handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", middleware.Protected(), handler.Me)
	auth.Post("/forgot-password", validate.ForgotPassword(), handler.ForgotPassword)
	auth.Post("/reset-password", validate.ResetPassword(), handler.ResetPassword)

	events := api.Group("/events", logger.New())
	events.Get("/", middleware.OptionalJWT(), handler.GetEvents)
	events.Get("/recommended", handler.GetRecommendedEvents)
	events.Get("/my-events", middleware.Protected(), handler.GetMyEvents)
	events.Get("/stats", middleware.Protected(), middleware.RequireRoles(constants.ROLE_ORGANIZER, constants.ROLE_ADMIN), handler.GetEventStats)
	events.Get("/dashboard", middleware.Protected(), middleware.RequireRoles(constants.ROLE_ADMIN), handler.GetDashboardData)
	events.Get("/category/:category", handler.GetEventsByCategory)
	events.Get("/slug/:slug", handler.GetEventBySlug)
	events.Post("/", middleware.Protected(), middleware.RequireRoles(constants.ROLE_ORGANIZER, constants.ROLE_ADMIN), validate.CreateEvent(), handler.CreateEvent)
	events.Get("/:id", validate.GetById("id"), handler.GetEventById)
	events.Put("/:id", middleware.Protected(), validate.GetById("id"), validate.UpdateEvent(), handler.UpdateEvent)
	events.Delete("/:id", middleware.Protected(), validate.GetById("id"), handler.DeleteEvent)
	events.Get("/:id/ws", websocket.New(handler.EventSeatSocket))

	tickets := api.Group("/tickets", logger.New())
	tickets.Post("/", middleware.Protected(), validate.BookTicket(), handler.BookTicket)
	tickets.Post("/cancel", middleware.Protected(), validate.CancelTicket(), handler.CancelTicket)
	tickets.Get("/my-tickets", middleware.Protected(), handler.GetMyTickets)
	tickets.Get("/user/:id", middleware.Protected(), validate.GetById("id"), handler.GetTicketsByUserId)
	tickets.Get("/:id", middleware.OptionalJWT(), validate.GetById("id"), handler.GetTicketById)

	payments := api.Group("/payments", logger.New())
	payments.Post("/process", middleware.Protected(), validate.ProcessPayment(), handler.ProcessPayment)
	payments.Post("/refund", middleware.Protected(), validate.Refund(), handler.ProcessRefund)

	users := api.Group("/users", logger.New())
	users.Get("/profile", middleware.Protected(), handler.GetProfile)
	users.Put("/profile", middleware.Protected(), validate.UpdateProfile(), handler.UpdateProfile)
	users.Put("/password", middleware.Protected(), validate.UpdatePassword(), handler.UpdatePassword)
	users.Post("/avatar", middleware.Protected(), handler.UploadAvatar)
	users.Get("/:id", middleware.Protected(), validate.GetById("id"), handler.GetUserById)

	admin := api.Group("/admin", logger.New(), middleware.Protected(), middleware.RequireRoles(constants.ROLE_ADMIN))
	admin.Get("/users", handler.AdminGetUsers)
	admin.Get("/events", handler.AdminGetEvents)
	admin.Get("/stats", handler.AdminGetSystemStats)
}
