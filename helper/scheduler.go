package helper

import (
	"fmt"
	"log"
	"time"

	"event_ticketing/config"
	"event_ticketing/database"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
)

var tokenCleanupScheduler *cron.Cron

func StartTokenCleanupScheduler() {
	tokenCleanupScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := tokenCleanupScheduler.AddFunc("*/15 * * * *", purgeExpiredResetTokens)
	if err != nil {
		log.Printf("failed to start token cleanup scheduler: %v", err)
		return
	}

	tokenCleanupScheduler.Start()
	log.Println("password reset token cleanup scheduler started (every 15 minutes)")
}

func StopTokenCleanupScheduler() {
	if tokenCleanupScheduler != nil {
		tokenCleanupScheduler.Stop()
	}
}

func purgeExpiredResetTokens() {
	result := database.DB.
		Where("expires_at < ?", time.Now()).
		Delete(&model.PasswordResetToken{})

	if result.Error != nil {
		log.Printf("failed to purge reset tokens: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("purged %d expired password reset tokens", result.RowsAffected)
	}
}

var reminderScheduler gocron.Scheduler

// SendEventReminders mails every confirmed ticket holder whose event starts
// within the next day.
func SendEventReminders() {
	log.Println("[CRON] SendEventReminders triggered")

	now := time.Now()
	var tickets []model.Ticket
	err := database.DB.Preload("Event").Preload("User").
		Joins("JOIN events ON events.id = tickets.event_id").
		Where("tickets.status = ? AND events.date BETWEEN ? AND ?",
			"confirmed", now, now.Add(24*time.Hour)).
		Find(&tickets).Error
	if err != nil {
		log.Printf("failed to load tickets for reminders: %v", err)
		return
	}

	for _, ticket := range tickets {
		if ticket.User.Email == "" {
			continue
		}
		utils.SendEventReminderEmail(ticket.User.Email, utils.TicketEmailData{
			UserName:   ticket.User.Name,
			EventName:  ticket.Event.Name,
			EventDate:  ticket.Event.Date.Format("02 Jan 2006"),
			EventTime:  ticket.Event.Time,
			Location:   ticket.Event.Location,
			Seats:      ticket.Seats,
			TicketId:   ticket.ID,
			TicketLink: fmt.Sprintf("%s/tickets/%d", config.ConfigOr("FRONTEND_URL", "http://localhost:3000"), ticket.ID),
		})
	}
	log.Printf("sent %d event reminders", len(tickets))
}

func StartReminderScheduler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}

	reminderScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(9, 0, 0),
			),
		),
		gocron.NewTask(SendEventReminders),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("event reminder scheduler started (daily 09:00)")
}

func StopReminderScheduler() {
	if reminderScheduler != nil {
		_ = reminderScheduler.Shutdown()
	}
}
