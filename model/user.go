package model

import "time"

type User struct {
	DTO
	Name     string  `gorm:"not null" validate:"required" json:"name"`
	Email    string  `gorm:"uniqueIndex;not null" validate:"required,email" json:"email"`
	Password string  `gorm:"not null" json:"-"`
	Role     string  `gorm:"not null;default:'customer'" json:"role"`
	Avatar   *string `json:"avatar,omitempty"`

	Tickets []Ticket `gorm:"foreignKey:UserId" json:"-"`
	Events  []Event  `gorm:"foreignKey:OrganizerId" json:"-"`
}

type Users []User

type RegisterInput struct {
	Name     string `validate:"required" json:"name"`
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required,min=6" json:"password"`
	Role     string `validate:"omitempty,oneof=customer organizer" json:"role"`
}

type LoginInput struct {
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required" json:"password"`
}

type UpdateProfileInput struct {
	Name  *string `validate:"omitempty,min=1" json:"name"`
	Email *string `validate:"omitempty,email" json:"email"`
}

type UpdatePasswordInput struct {
	CurrentPassword string `validate:"required" json:"currentPassword"`
	NewPassword     string `validate:"required,min=6" json:"newPassword"`
}

type ForgotPasswordInput struct {
	Email string `validate:"required,email" json:"email"`
}

type ResetPasswordInput struct {
	Token       string `validate:"required" json:"token"`
	NewPassword string `validate:"required,min=6" json:"newPassword"`
}

type PasswordResetToken struct {
	DTO
	UserId    uint      `gorm:"not null" json:"userId"`
	Token     string    `gorm:"size:64;uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	User      User      `gorm:"foreignKey:UserId" json:"-"`
}
