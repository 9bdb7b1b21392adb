package model

import "time"

// ApplicationStatus is the review state of a job application.
type ApplicationStatus string

const (
	ApplicationStatusApplied     ApplicationStatus = "APPLIED"
	ApplicationStatusUnderReview ApplicationStatus = "UNDER_REVIEW"
	ApplicationStatusShortlisted ApplicationStatus = "SHORTLISTED"
	ApplicationStatusRejected    ApplicationStatus = "REJECTED"
	ApplicationStatusSelected    ApplicationStatus = "SELECTED"
)

// Valid reports whether s is a known status.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusApplied, ApplicationStatusUnderReview, ApplicationStatusShortlisted,
		ApplicationStatusRejected, ApplicationStatusSelected:
		return true
	}
	return false
}

// RequiresDescription reports whether moving into s needs a status description
// explaining the decision to the applicant.
func (s ApplicationStatus) RequiresDescription() bool {
	switch s {
	case ApplicationStatusShortlisted, ApplicationStatusRejected, ApplicationStatusSelected:
		return true
	}
	return false
}

// Application is a user's application to a job. A user applies to a job at most once.
type Application struct {
	ID                uint              `json:"id" gorm:"primaryKey"`
	UserID            uint              `json:"userId" gorm:"not null;uniqueIndex:idx_application_user_job"`
	JobID             uint              `json:"jobId" gorm:"not null;uniqueIndex:idx_application_user_job;index"`
	FullName          string            `json:"fullName" gorm:"size:100;not null"`
	Email             string            `json:"email" gorm:"size:255;not null"`
	Phone             string            `json:"phone" gorm:"size:30"`
	ResumeURL         string            `json:"resumeUrl" gorm:"size:512;not null"`
	CoverLetter       string            `json:"coverLetter" gorm:"type:text"`
	LinkedInURL       string            `json:"linkedinUrl" gorm:"size:512"`
	PortfolioURL      string            `json:"portfolioUrl" gorm:"size:512"`
	Status            ApplicationStatus `json:"status" gorm:"size:20;not null;default:'APPLIED';index"`
	StatusDescription string            `json:"statusDescription" gorm:"type:text"`
	CreatedAt         time.Time         `json:"createdAt" gorm:"index"`
	UpdatedAt         time.Time         `json:"updatedAt"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Job  *Job  `json:"job,omitempty" gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
}
