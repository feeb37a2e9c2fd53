package database

import (
	"log"

	"event_ticketing/config"
	"event_ticketing/constants"
	"event_ticketing/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedData creates the initial admin account if it does not exist yet.
func SeedData(db *gorm.DB) {
	password := config.ConfigOr("ADMIN_PASSWORD", "changeme123")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Println("failed to hash admin password:", err)
		return
	}

	admin := model.User{
		Name:     "Administrator",
		Email:    config.ConfigOr("ADMIN_EMAIL", "admin@eventticketing.local"),
		Password: string(hash),
		Role:     constants.ROLE_ADMIN,
	}

	if err := db.Where(model.User{Email: admin.Email}).FirstOrCreate(&admin).Error; err != nil {
		log.Println("failed to seed admin user:", err)
	}
}
