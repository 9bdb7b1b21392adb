package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// JobType enumerates employment types.
type JobType string

const (
	JobTypeFullTime   JobType = "FULL_TIME"
	JobTypePartTime   JobType = "PART_TIME"
	JobTypeContract   JobType = "CONTRACT"
	JobTypeInternship JobType = "INTERNSHIP"
)

// Valid reports whether t is a known job type.
func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
		return true
	}
	return false
}

// Job is an open position published on the careers page.
type Job struct {
	ID           uint                        `json:"id" gorm:"primaryKey"`
	Title        string                      `json:"title" gorm:"size:255;not null"`
	Slug         string                      `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Description  string                      `json:"description" gorm:"type:text;not null"`
	Department   string                      `json:"department" gorm:"size:100"`
	Location     string                      `json:"location" gorm:"size:255;index"`
	Type         JobType                     `json:"type" gorm:"size:20;not null;index"`
	Experience   string                      `json:"experience" gorm:"size:100"`
	SalaryMin    *decimal.Decimal            `json:"salaryMin" gorm:"type:decimal(12,2)"`
	SalaryMax    *decimal.Decimal            `json:"salaryMax" gorm:"type:decimal(12,2)"`
	Skills       datatypes.JSONSlice[string] `json:"skills"`
	Requirements datatypes.JSONSlice[string] `json:"requirements"`
	IsActive     bool                        `json:"isActive" gorm:"not null;index"`
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
}
