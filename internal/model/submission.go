package model

import "time"

// ContactSubmission is an append-only record of the public contact form.
type ContactSubmission struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Email     string    `json:"email" gorm:"size:255;not null"`
	Company   string    `json:"company" gorm:"size:255"`
	Phone     string    `json:"phone" gorm:"size:30"`
	Subject   string    `json:"subject" gorm:"size:255"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

// FAQQuestion is a question submitted from the public FAQ page.
type FAQQuestion struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Email     string    `json:"email" gorm:"size:255;not null"`
	Question  string    `json:"question" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

// TableName keeps the FAQ acronym intact.
func (FAQQuestion) TableName() string {
	return "faq_questions"
}
