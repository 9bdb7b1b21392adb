package model

import (
	"time"

	"gorm.io/datatypes"
)

// BlogStatus is the publication state of a blog post.
type BlogStatus string

const (
	BlogStatusDraft     BlogStatus = "DRAFT"
	BlogStatusPublished BlogStatus = "PUBLISHED"
)

// Valid reports whether s is a known status.
func (s BlogStatus) Valid() bool {
	return s == BlogStatusDraft || s == BlogStatusPublished
}

// Category groups blog posts.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;size:120;not null"`
	Description string    `json:"description" gorm:"size:500"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Blog is an article. PublishedAt is stamped on the first transition to
// PUBLISHED and never changes afterwards.
type Blog struct {
	ID          uint                        `json:"id" gorm:"primaryKey"`
	Title       string                      `json:"title" gorm:"size:255;not null"`
	Slug        string                      `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Excerpt     string                      `json:"excerpt" gorm:"size:500"`
	Content     string                      `json:"content" gorm:"type:text;not null"`
	CoverImage  *string                     `json:"coverImage" gorm:"size:512"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	Status      BlogStatus                  `json:"status" gorm:"size:20;not null;default:'DRAFT';index"`
	PublishedAt *time.Time                  `json:"publishedAt" gorm:"index"`
	CategoryID  uint                        `json:"categoryId" gorm:"not null;index"`
	AuthorID    *uint                       `json:"authorId" gorm:"index"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`

	// Relations
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Author   *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}
