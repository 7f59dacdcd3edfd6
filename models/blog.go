package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Blog struct {
	gorm.Model
	Title       string         `gorm:"size:150;uniqueIndex;not null" json:"title"`
	Description string         `gorm:"size:500;not null" json:"description"`
	Content     string         `gorm:"not null" json:"content"`
	AuthorID    uint           `json:"author_id"`
	CategoryID  uint           `json:"category_id"`
	Tags        datatypes.JSON `json:"tags"`
	CoverImage  string         `gorm:"not null" json:"cover_image"`
	IsPublished bool           `gorm:"default:false" json:"is_published"`
	Views       int            `gorm:"default:0" json:"views"`
	Likes       int            `gorm:"default:0" json:"likes"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`

	Author   *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
