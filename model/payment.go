package model

type Payment struct {
	DTO
	UserId        uint    `gorm:"not null;index" json:"userId"`
	EventId       uint    `gorm:"not null;index" json:"eventId"`
	Amount        float64 `gorm:"not null" json:"amount"`
	Status        string  `gorm:"size:12;not null;default:'pending'" json:"status"`
	TransactionId string  `gorm:"size:40;not null" json:"transactionId"`

	User  User  `gorm:"foreignKey:UserId" json:"-"`
	Event Event `gorm:"foreignKey:EventId" json:"-"`
}

type ProcessPaymentInput struct {
	EventId uint `validate:"required" json:"eventId"`
	Seats   int  `validate:"required,gte=1" json:"seats"`
}

type RefundInput struct {
	TicketId uint `validate:"required" json:"ticketId"`
}
