package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/smtp"
	"strconv"

	"event_ticketing/config"

	"github.com/jordan-wright/email"
	"gopkg.in/gomail.v2"
)

// TicketEmailData feeds the booking / cancellation templates.
type TicketEmailData struct {
	UserName     string
	EventName    string
	EventDate    string
	EventTime    string
	Location     string
	Seats        int
	TotalAmount  float64
	TicketId     uint
	TicketLink   string
	RefundAmount float64
	Fee          float64
	CancelledAt  string
}

func smtpDialer() (*gomail.Dialer, string, bool) {
	host := config.Config("SMTP_HOST")
	if host == "" {
		return nil, "", false
	}
	port, _ := strconv.Atoi(config.ConfigOr("SMTP_PORT", "587"))
	from := config.ConfigOr("SMTP_FROM", config.Config("SMTP_USERNAME"))
	return gomail.NewDialer(host, port, config.Config("SMTP_USERNAME"), config.Config("SMTP_PASSWORD")), from, true
}

func sendTemplated(to, subject, tmplPath string, data TicketEmailData, qrPNG []byte) {
	d, from, ok := smtpDialer()
	if !ok {
		log.Printf("SMTP not configured, skipping mail to %s", to)
		return
	}

	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("failed to load email template %s: %v", tmplPath, err)
		return
	}
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		log.Printf("failed to render email template %s: %v", tmplPath, err)
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	if qrPNG != nil {
		filename := fmt.Sprintf("ticket_%d.png", data.TicketId)
		m.Attach(filename, gomail.Rename(filename), gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(qrPNG)
			return err
		}))
	}

	if err := d.DialAndSend(m); err != nil {
		log.Printf("failed to send mail to %s: %v", to, err)
	}
}

// SendTicketConfirmationEmail delivers the booking confirmation with the
// ticket QR attached. Runs async; failures are logged and never surface to
// the booking request.
func SendTicketConfirmationEmail(to string, data TicketEmailData) {
	go func() {
		qrPNG, err := GenerateQRCode(TicketQRURL(data.TicketId), 256)
		if err != nil {
			log.Printf("failed to render QR for ticket %d: %v", data.TicketId, err)
			qrPNG = nil
		}
		sendTemplated(to, "Ticket Confirmation for "+data.EventName, "templates/ticket_confirmation.html", data, qrPNG)
	}()
}

// SendTicketCancellationEmail confirms a cancellation and the refund that
// applies. Async, best-effort.
func SendTicketCancellationEmail(to string, data TicketEmailData) {
	go func() {
		sendTemplated(to, "Ticket Cancelled - "+data.EventName, "templates/ticket_cancelled.html", data, nil)
	}()
}

// SendEventReminderEmail nudges a confirmed ticket holder the day before the
// event.
func SendEventReminderEmail(to string, data TicketEmailData) {
	sendTemplated(to, "Reminder: "+data.EventName+" is tomorrow", "templates/event_reminder.html", data, nil)
}

// SendPasswordResetEmail mails the reset link as plain text.
func SendPasswordResetEmail(to, resetLink string) error {
	host := config.Config("SMTP_HOST")
	if host == "" {
		log.Printf("SMTP not configured, skipping reset mail to %s", to)
		return nil
	}
	port := config.ConfigOr("SMTP_PORT", "587")
	username := config.Config("SMTP_USERNAME")

	e := email.NewEmail()
	e.From = config.ConfigOr("SMTP_FROM", username)
	e.To = []string{to}
	e.Subject = "Password Reset"
	e.Text = []byte(fmt.Sprintf("Click the link to reset your password: %s", resetLink))
	return e.Send(host+":"+port, smtp.PlainAuth("", username, config.Config("SMTP_PASSWORD"), host))
}
