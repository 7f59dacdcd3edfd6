package models

import "gorm.io/gorm"

type NewsletterSubscriber struct {
	gorm.Model
	Email string `gorm:"uniqueIndex;not null" json:"email"`
}
