package utils

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mahboube89/Training-Platform-Backend/config"
	"github.com/mahboube89/Training-Platform-Backend/models"
)

// InitDB opens the Postgres connection. TranslateError is enabled so
// unique-index violations come back as gorm.ErrDuplicatedKey; handlers rely
// on that as the authoritative duplicate signal.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates/updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.BanRecord{},
		&models.Category{},
		&models.Tutorial{},
		&models.Section{},
		&models.Enrollment{},
		&models.Blog{},
		&models.Comment{},
		&models.Menu{},
		&models.ContactTicket{},
		&models.Notification{},
		&models.NewsletterSubscriber{},
	)
}
