package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Title string `gorm:"size:30;uniqueIndex;not null" json:"title"`
	Slug  string `gorm:"size:30;uniqueIndex;not null" json:"slug"` // generated once, immutable
}
