package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"dataconsult/internal/auth"
	apperrors "dataconsult/internal/errors"
	"dataconsult/internal/model"
	"dataconsult/internal/repository"
)

const dateLayout = "2006-01-02"

// ErrAlreadyApplied is returned for a second application to the same job.
var ErrAlreadyApplied = apperrors.Conflict("You have already applied for this job")

// ApplicationInput is an applicant's submission.
type ApplicationInput struct {
	JobID        uint   `json:"jobId" validate:"required"`
	FullName     string `json:"fullName" validate:"required,min=2,max=100"`
	Email        string `json:"email" validate:"required,email,max=255"`
	Phone        string `json:"phone" validate:"omitempty,min=6,max=30"`
	ResumeURL    string `json:"resumeUrl" validate:"required,url,max=512"`
	CoverLetter  string `json:"coverLetter" validate:"max=5000"`
	LinkedInURL  string `json:"linkedinUrl" validate:"omitempty,url,max=512"`
	PortfolioURL string `json:"portfolioUrl" validate:"omitempty,url,max=512"`
}

// StatusUpdate moves an application to a new review state.
type StatusUpdate struct {
	Status            model.ApplicationStatus `json:"status" validate:"required"`
	StatusDescription string                  `json:"statusDescription" validate:"max=2000"`
}

// ApplicationQuery holds the raw staff list filters.
type ApplicationQuery struct {
	JobID    string `query:"jobId"`
	Status   string `query:"status"`
	DateFrom string `query:"dateFrom"`
	DateTo   string `query:"dateTo"`
}

// ApplicationCheck tells the job page whether the caller already applied.
type ApplicationCheck struct {
	Applied bool                     `json:"applied"`
	Status  *model.ApplicationStatus `json:"status,omitempty"`
}

// ApplicationService exposes application operations.
type ApplicationService interface {
	Create(ctx context.Context, p auth.Principal, in ApplicationInput) (*model.Application, error)
	Check(ctx context.Context, userID, jobID uint) ApplicationCheck
	ListMine(ctx context.Context, userID uint) ([]model.Application, error)
	List(ctx context.Context, q ApplicationQuery) ([]model.Application, error)
	UpdateStatus(ctx context.Context, id uint, update StatusUpdate) (*model.Application, error)
	Delete(ctx context.Context, id uint) error
}

type applicationService struct {
	repo     repository.ApplicationRepository
	jobRepo  repository.JobRepository
	notifier NotificationService
	logger   *slog.Logger
}

// NewApplicationService creates an application service.
func NewApplicationService(repo repository.ApplicationRepository, jobRepo repository.JobRepository, notifier NotificationService, logger *slog.Logger) ApplicationService {
	return &applicationService{repo: repo, jobRepo: jobRepo, notifier: notifier, logger: logger}
}

// Create submits an application to an active job. The unique (user, job)
// index backs up the pre-check when two submissions race.
func (s *applicationService) Create(ctx context.Context, p auth.Principal, in ApplicationInput) (*model.Application, error) {
	job, err := s.jobRepo.FindByID(ctx, in.JobID)
	if err != nil {
		return nil, storeErr(err, "Job not found")
	}
	if !job.IsActive {
		return nil, apperrors.NotFound("Job not found")
	}

	_, err = s.repo.FindByUserAndJob(ctx, p.UserID, job.ID)
	if err == nil {
		return nil, ErrAlreadyApplied
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal(fmt.Errorf("check existing application: %w", err))
	}

	app := &model.Application{
		UserID:       p.UserID,
		JobID:        job.ID,
		FullName:     strings.TrimSpace(in.FullName),
		Email:        normalizeEmail(in.Email),
		Phone:        strings.TrimSpace(in.Phone),
		ResumeURL:    strings.TrimSpace(in.ResumeURL),
		CoverLetter:  strings.TrimSpace(in.CoverLetter),
		LinkedInURL:  strings.TrimSpace(in.LinkedInURL),
		PortfolioURL: strings.TrimSpace(in.PortfolioURL),
		Status:       model.ApplicationStatusApplied,
	}
	if err := s.repo.Create(ctx, app); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyApplied
		}
		return nil, apperrors.Internal(fmt.Errorf("create application: %w", err))
	}

	s.notifier.Notify(ctx, model.NotificationApplication, "New application",
		fmt.Sprintf("%s applied for %s", app.FullName, job.Title), "/admin/applications")
	return app, nil
}

// Check never fails: any lookup problem reads as "not applied".
func (s *applicationService) Check(ctx context.Context, userID, jobID uint) ApplicationCheck {
	app, err := s.repo.FindByUserAndJob(ctx, userID, jobID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.WarnContext(ctx, "application check failed", "user_id", userID, "job_id", jobID, "error", err)
		}
		return ApplicationCheck{Applied: false}
	}
	status := app.Status
	return ApplicationCheck{Applied: true, Status: &status}
}

func (s *applicationService) ListMine(ctx context.Context, userID uint) ([]model.Application, error) {
	apps, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list user applications: %w", err))
	}
	if apps == nil {
		apps = []model.Application{}
	}
	return apps, nil
}

// List returns applications for staff. dateTo includes the whole named day.
func (s *applicationService) List(ctx context.Context, q ApplicationQuery) ([]model.Application, error) {
	filter, err := parseApplicationQuery(q)
	if err != nil {
		return nil, err
	}
	apps, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list applications: %w", err))
	}
	if apps == nil {
		apps = []model.Application{}
	}
	return apps, nil
}

// UpdateStatus validates the transition before touching the row, so a
// rejected update leaves the stored status unchanged.
func (s *applicationService) UpdateStatus(ctx context.Context, id uint, update StatusUpdate) (*model.Application, error) {
	status := model.ApplicationStatus(strings.ToUpper(strings.TrimSpace(string(update.Status))))
	if !status.Valid() {
		return nil, apperrors.Validation("status must be one of APPLIED, UNDER_REVIEW, SHORTLISTED, REJECTED, SELECTED")
	}
	description := strings.TrimSpace(update.StatusDescription)
	if status.RequiresDescription() && description == "" {
		return nil, apperrors.Validation("statusDescription is required when status is " + string(status))
	}

	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Application not found")
	}
	if err := s.repo.UpdateStatus(ctx, app.ID, status, description); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("update application status: %w", err))
	}
	app.Status = status
	app.StatusDescription = description
	return app, nil
}

func (s *applicationService) Delete(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.Internal(fmt.Errorf("delete application: %w", err))
	}
	if !deleted {
		return apperrors.NotFound("Application not found")
	}
	return nil
}

func parseApplicationQuery(q ApplicationQuery) (repository.ApplicationFilter, error) {
	var filter repository.ApplicationFilter

	if raw := strings.TrimSpace(q.JobID); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return filter, apperrors.Validation("jobId must be a positive integer")
		}
		filter.JobID = uint(id)
	}
	if raw := strings.TrimSpace(q.Status); raw != "" {
		filter.Status = model.ApplicationStatus(strings.ToUpper(raw))
		if !filter.Status.Valid() {
			return filter, apperrors.Validation("status must be one of APPLIED, UNDER_REVIEW, SHORTLISTED, REJECTED, SELECTED")
		}
	}
	if raw := strings.TrimSpace(q.DateFrom); raw != "" {
		from, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			return filter, apperrors.Validation("dateFrom must be a date in YYYY-MM-DD format")
		}
		filter.From = &from
	}
	if raw := strings.TrimSpace(q.DateTo); raw != "" {
		to, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			return filter, apperrors.Validation("dateTo must be a date in YYYY-MM-DD format")
		}
		end := to.AddDate(0, 0, 1)
		filter.ToBefore = &end
	}
	return filter, nil
}
