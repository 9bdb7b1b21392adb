package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"dataconsult/internal/model"
)

// JobFilter narrows job listings. Zero values mean "no constraint".
type JobFilter struct {
	Type       model.JobType
	Location   string
	Search     string
	MinSalary  *decimal.Decimal
	MaxSalary  *decimal.Decimal
	ActiveOnly bool
}

// JobRepository defines job persistence operations.
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	Update(ctx context.Context, job *model.Job) error
	FindByID(ctx context.Context, id uint) (*model.Job, error)
	FindBySlug(ctx context.Context, slug string) (*model.Job, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, filter JobFilter) ([]model.Job, error)
}

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository.
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Create creates a new job.
func (r *jobRepository) Create(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// Update saves every column of an existing job.
func (r *jobRepository) Update(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

// FindByID finds a job by ID.
func (r *jobRepository) FindByID(ctx context.Context, id uint) (*model.Job, error) {
	var job model.Job
	if err := r.db.WithContext(ctx).First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// FindBySlug finds a job by slug, active or not.
func (r *jobRepository) FindBySlug(ctx context.Context, slug string) (*model.Job, error) {
	var job model.Job
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// SlugExists reports whether slug is taken.
func (r *jobRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return slugExists(ctx, r.db, &model.Job{}, slug)
}

// List returns jobs matching filter, newest first. A salary filter is an
// overlap test: the job's range must intersect the requested one.
func (r *jobRepository) List(ctx context.Context, filter JobFilter) ([]model.Job, error) {
	q := r.db.WithContext(ctx).Model(&model.Job{})
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Location != "" {
		q = q.Where("LOWER(location) LIKE ?"+likeEscape, likePattern(filter.Location))
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		q = q.Where("(LOWER(title) LIKE ?"+likeEscape+" OR LOWER(description) LIKE ?"+likeEscape+")", pattern, pattern)
	}
	if filter.MinSalary != nil {
		q = q.Where("salary_max >= ?", *filter.MinSalary)
	}
	if filter.MaxSalary != nil {
		q = q.Where("salary_min <= ?", *filter.MaxSalary)
	}

	var jobs []model.Job
	if err := q.Order("created_at DESC").Order("id DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}
