package models

import "gorm.io/gorm"

const (
	TutorialComplete   = "COMPLETE"
	TutorialIncomplete = "INCOMPLETE"
)

type Tutorial struct {
	gorm.Model
	Title        string  `gorm:"size:100;not null;uniqueIndex:idx_tutorials_title_category" json:"title"`
	Description  string  `gorm:"size:500;not null" json:"description"`
	Cover        string  `gorm:"not null" json:"cover"` // stored filename under tutorials/covers
	InstructorID uint    `gorm:"not null" json:"instructor_id"`
	CategoryID   uint    `gorm:"not null;uniqueIndex:idx_tutorials_title_category" json:"category_id"`
	Slug         string  `gorm:"uniqueIndex;not null" json:"slug"`
	Price        float64 `gorm:"default:0" json:"price"`
	IsFree       bool    `gorm:"default:false" json:"is_free"`
	Status       string  `gorm:"not null" json:"status"` // COMPLETE, INCOMPLETE
	OnSale       bool    `gorm:"default:false" json:"on_sale"`
	CreatedBy    uint    `json:"created_by"`

	Instructor *User     `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Sections   []Section `gorm:"foreignKey:TutorialID" json:"sections,omitempty"`
}

type Section struct {
	gorm.Model
	Title      string `gorm:"size:100;not null;uniqueIndex:idx_sections_title_tutorial" json:"title"`
	Video      string `gorm:"not null" json:"video"` // stored filename under tutorials/videos
	Duration   int    `gorm:"not null" json:"duration"` // minutes
	IsFree     bool   `gorm:"default:false" json:"is_free"`
	TutorialID uint   `gorm:"not null;uniqueIndex:idx_sections_title_tutorial" json:"tutorial_id"`

	Tutorial *Tutorial `gorm:"foreignKey:TutorialID" json:"tutorial,omitempty"`
}

// Enrollment links a user to a tutorial. Price is forced to 0 for free
// tutorials regardless of the tutorial's stored price.
type Enrollment struct {
	gorm.Model
	UserID     uint    `gorm:"not null;uniqueIndex:idx_enrollments_user_tutorial" json:"user_id"`
	TutorialID uint    `gorm:"not null;uniqueIndex:idx_enrollments_user_tutorial" json:"tutorial_id"`
	Price      float64 `gorm:"default:0" json:"price"`
	Progress   int     `gorm:"default:0" json:"progress"` // 0-100
}
