package model

import "time"

type Ticket struct {
	DTO
	EventId uint   `gorm:"not null;index" json:"eventId"`
	UserId  uint   `gorm:"not null;index" json:"userId"`
	Seats   int    `gorm:"not null" validate:"required,gte=1" json:"seats"`
	Status  string `gorm:"size:12;not null;default:'confirmed'" json:"status"`
	// QRCode is derived from the ticket id, never persisted.
	QRCode      string     `gorm:"-" json:"qrCode,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`

	Event Event `gorm:"foreignKey:EventId" json:"event,omitempty"`
	User  User  `gorm:"foreignKey:UserId" json:"user,omitempty"`
}

type Tickets []Ticket

type BookTicketInput struct {
	EventId uint `validate:"required" json:"eventId"`
	Seats   int  `validate:"required,gte=1" json:"seats"`
}

type CancelTicketInput struct {
	TicketId uint `validate:"required" json:"ticketId"`
}

// RedactedTicket is what unauthenticated (or non-owner) requesters get for a
// ticket lookup: event metadata plus the booking shape, no user PII.
type RedactedTicket struct {
	ID     uint `json:"id"`
	Event  struct {
		Name        string    `json:"name"`
		Date        time.Time `json:"date"`
		Time        string    `json:"time"`
		Location    string    `json:"location"`
		Description string    `json:"description"`
		Category    string    `json:"category"`
		TicketPrice float64   `json:"ticketPrice"`
	} `json:"event"`
	Seats     int       `json:"seats"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Redact strips user identity from a ticket for public consumption.
func (t *Ticket) Redact() RedactedTicket {
	var r RedactedTicket
	r.ID = t.ID
	r.Event.Name = t.Event.Name
	r.Event.Date = t.Event.Date
	r.Event.Time = t.Event.Time
	r.Event.Location = t.Event.Location
	r.Event.Description = t.Event.Description
	r.Event.Category = t.Event.Category
	r.Event.TicketPrice = t.Event.TicketPrice
	r.Seats = t.Seats
	r.Status = t.Status
	r.CreatedAt = t.CreatedAt
	return r
}
