package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"dataconsult/internal/model"
)

// ApplicationFilter narrows the staff application listing.
type ApplicationFilter struct {
	JobID    uint
	Status   model.ApplicationStatus
	From     *time.Time
	ToBefore *time.Time // exclusive upper bound
}

// ApplicationRepository defines application persistence operations.
type ApplicationRepository interface {
	Create(ctx context.Context, app *model.Application) error
	FindByID(ctx context.Context, id uint) (*model.Application, error)
	FindByUserAndJob(ctx context.Context, userID, jobID uint) (*model.Application, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Application, error)
	List(ctx context.Context, filter ApplicationFilter) ([]model.Application, error)
	UpdateStatus(ctx context.Context, id uint, status model.ApplicationStatus, description string) error
	Delete(ctx context.Context, id uint) (bool, error)
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create inserts an application. A second row for the same (user, job) pair
// fails with gorm.ErrDuplicatedKey.
func (r *applicationRepository) Create(ctx context.Context, app *model.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

// FindByID finds an application by ID.
func (r *applicationRepository) FindByID(ctx context.Context, id uint) (*model.Application, error) {
	var app model.Application
	if err := r.db.WithContext(ctx).First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// FindByUserAndJob finds the single application a user made to a job.
func (r *applicationRepository) FindByUserAndJob(ctx context.Context, userID, jobID uint) (*model.Application, error) {
	var app model.Application
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// ListByUser lists a user's applications with their jobs, newest first.
func (r *applicationRepository) ListByUser(ctx context.Context, userID uint) ([]model.Application, error) {
	var apps []model.Application
	if err := r.db.WithContext(ctx).
		Preload("Job").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// List returns applications matching filter with applicant and job, newest first.
func (r *applicationRepository) List(ctx context.Context, filter ApplicationFilter) ([]model.Application, error) {
	q := r.db.WithContext(ctx).Model(&model.Application{}).
		Preload("User").
		Preload("Job")
	if filter.JobID != 0 {
		q = q.Where("job_id = ?", filter.JobID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.ToBefore != nil {
		q = q.Where("created_at < ?", *filter.ToBefore)
	}

	var apps []model.Application
	if err := q.Order("created_at DESC").Order("id DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// UpdateStatus sets status and description on one application.
func (r *applicationRepository) UpdateStatus(ctx context.Context, id uint, status model.ApplicationStatus, description string) error {
	return r.db.WithContext(ctx).Model(&model.Application{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":             status,
			"status_description": description,
		}).Error
}

// Delete removes an application and reports whether a row existed.
func (r *applicationRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Application{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
