package models

import "gorm.io/gorm"

type ContactTicket struct {
	gorm.Model
	Name        string `gorm:"size:50;not null" json:"name"`
	Email       string `gorm:"not null" json:"email"`
	Phone       string `json:"phone,omitempty"`
	Body        string `gorm:"size:500;not null" json:"body"`
	HasResponse bool   `gorm:"default:false;index" json:"has_response"`
}
