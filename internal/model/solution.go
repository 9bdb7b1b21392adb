package model

import (
	"time"

	"gorm.io/datatypes"
)

// Solution is a service offering shown on the marketing site, ordered by Order ascending.
type Solution struct {
	ID          uint                        `json:"id" gorm:"primaryKey"`
	Title       string                      `json:"title" gorm:"size:255;not null"`
	Slug        string                      `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Description string                      `json:"description" gorm:"type:text;not null"`
	Icon        string                      `json:"icon" gorm:"size:100"`
	Features    datatypes.JSONSlice[string] `json:"features"`
	IsActive    bool                        `json:"isActive" gorm:"not null;index"`
	Order       int                         `json:"order" gorm:"column:sort_order;not null;default:0;index"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}
