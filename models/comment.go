package models

import "gorm.io/gorm"

const (
	ReferenceTutorial = "TUTORIAL"
	ReferenceBlog     = "BLOG"
)

// Comment is stored flat; threading is materialized at read time by grouping
// replies by ParentCommentID. A comment with ParentCommentID == nil is
// top-level.
type Comment struct {
	gorm.Model
	Body            string `gorm:"size:100;not null" json:"body"`
	ReferenceType   string `gorm:"not null;index" json:"reference_type"` // TUTORIAL, BLOG
	ReferenceID     uint   `gorm:"not null;index" json:"reference_id"`
	UserID          uint   `gorm:"not null" json:"user_id"`
	IsAccepted      bool   `gorm:"default:false" json:"is_accepted"`
	Review          *int   `json:"review,omitempty"` // 1-5
	ParentCommentID *uint  `gorm:"index" json:"parent_comment_id,omitempty"`

	User    *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Replies []Comment `gorm:"-" json:"replies,omitempty"`
}
