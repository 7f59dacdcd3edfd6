package models

import "gorm.io/gorm"

// Menu is self-referencing: items with ParentID == nil are main menu items,
// the rest are submenus. Sibling Order values are kept contiguous per parent
// by the insert-with-shift logic in the menu controller.
type Menu struct {
	gorm.Model
	Title      string `gorm:"size:20;not null" json:"title"`
	Path       string `gorm:"uniqueIndex;not null" json:"path"`
	Order      int    `gorm:"column:item_order;default:0" json:"order"`
	ParentID   *uint  `gorm:"index" json:"parent_id,omitempty"`
	CategoryID uint   `gorm:"not null" json:"category_id"`

	Submenus []Menu `gorm:"-" json:"submenus,omitempty"`
}
