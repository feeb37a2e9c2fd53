package model

import "time"

type Event struct {
	DTO
	Name        string    `gorm:"not null" validate:"required" json:"name"`
	Slug        string    `gorm:"size:80;uniqueIndex" json:"slug"`
	Date        time.Time `gorm:"not null" validate:"required" json:"date"`
	Time        string    `gorm:"size:10;not null" validate:"required" json:"time"`
	Location    string    `gorm:"not null" validate:"required" json:"location"`
	Description string    `gorm:"not null" validate:"required" json:"description"`
	Category    string    `gorm:"size:40;not null" validate:"required" json:"category"`
	TicketPrice float64   `gorm:"not null" validate:"required,gt=0" json:"ticketPrice"`
	TotalSeats  int       `gorm:"not null" validate:"required,gt=0" json:"totalSeats"`
	// 0 <= AvailableSeats <= TotalSeats. Mutated only through
	// helper.ReserveSeats / helper.ReleaseSeats.
	AvailableSeats int     `gorm:"not null" json:"availableSeats"`
	OrganizerId    uint    `gorm:"not null" json:"organizerId"`
	Image          *string `json:"image,omitempty"`

	Organizer User     `gorm:"foreignKey:OrganizerId" json:"organizer,omitempty"`
	Tickets   []Ticket `gorm:"foreignKey:EventId" json:"-"`
}

type Events []Event

type CreateEventInput struct {
	Name        string  `validate:"required" json:"name" form:"name"`
	Date        string  `validate:"required" json:"date" form:"date"` // YYYY-MM-DD or RFC3339
	Time        string  `validate:"required" json:"time" form:"time"`
	Location    string  `validate:"required" json:"location" form:"location"`
	Description string  `validate:"required" json:"description" form:"description"`
	Category    string  `validate:"required" json:"category" form:"category"`
	TicketPrice float64 `validate:"required,gt=0" json:"ticketPrice" form:"ticketPrice"`
	TotalSeats  int     `validate:"required,gt=0" json:"totalSeats" form:"totalSeats"`
}

type UpdateEventInput struct {
	Name        *string  `json:"name" form:"name"`
	Date        *string  `json:"date" form:"date"`
	Time        *string  `json:"time" form:"time"`
	Location    *string  `json:"location" form:"location"`
	Description *string  `json:"description" form:"description"`
	Category    *string  `validate:"omitempty" json:"category" form:"category"`
	TicketPrice *float64 `validate:"omitempty,gt=0" json:"ticketPrice" form:"ticketPrice"`
	TotalSeats  *int     `validate:"omitempty,gt=0" json:"totalSeats" form:"totalSeats"`
}

type FilterEventInput struct {
	Pagination
	Category string `query:"category"`
	From     string `query:"from"`
	To       string `query:"to"`
}
