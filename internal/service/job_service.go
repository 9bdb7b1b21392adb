package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"dataconsult/internal/cache"
	apperrors "dataconsult/internal/errors"
	"dataconsult/internal/model"
	"dataconsult/internal/repository"
)

const jobCacheTTL = 5 * time.Minute

// JobInput is the full set of fields for creating a job.
type JobInput struct {
	Title        string           `json:"title" validate:"required,min=3,max=255"`
	Description  string           `json:"description" validate:"required,min=50"`
	Department   string           `json:"department" validate:"max=100"`
	Location     string           `json:"location" validate:"required,max=255"`
	Type         model.JobType    `json:"type" validate:"required,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
	Experience   string           `json:"experience" validate:"max=100"`
	SalaryMin    *decimal.Decimal `json:"salaryMin" swaggertype:"string"`
	SalaryMax    *decimal.Decimal `json:"salaryMax" swaggertype:"string"`
	Skills       []string         `json:"skills" validate:"required,min=1,dive,required"`
	Requirements []string         `json:"requirements" validate:"dive,required"`
	IsActive     *bool            `json:"isActive"`
}

// JobPatch carries the fields an admin edit touches. Nil means unchanged.
type JobPatch struct {
	Title        *string          `json:"title" validate:"omitempty,min=3,max=255"`
	Description  *string          `json:"description" validate:"omitempty,min=50"`
	Department   *string          `json:"department" validate:"omitempty,max=100"`
	Location     *string          `json:"location" validate:"omitempty,max=255"`
	Type         *model.JobType   `json:"type" validate:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
	Experience   *string          `json:"experience" validate:"omitempty,max=100"`
	SalaryMin    *decimal.Decimal `json:"salaryMin" swaggertype:"string"`
	SalaryMax    *decimal.Decimal `json:"salaryMax" swaggertype:"string"`
	Skills       *[]string        `json:"skills"`
	Requirements *[]string        `json:"requirements"`
	IsActive     *bool            `json:"isActive"`
}

// JobQuery holds the raw list filters from the query string.
type JobQuery struct {
	Type      string `query:"type"`
	Location  string `query:"location"`
	Search    string `query:"search"`
	MinSalary string `query:"minSalary"`
	MaxSalary string `query:"maxSalary"`
}

// JobService exposes job operations.
type JobService interface {
	ListPublic(ctx context.Context, q JobQuery) ([]model.Job, error)
	GetPublicBySlug(ctx context.Context, slug string) (*model.Job, error)
	ListAll(ctx context.Context, q JobQuery) ([]model.Job, error)
	Get(ctx context.Context, id uint) (*model.Job, error)
	Create(ctx context.Context, in JobInput) (*model.Job, error)
	Update(ctx context.Context, id uint, patch JobPatch) (*model.Job, error)
}

type jobService struct {
	repo  repository.JobRepository
	cache *cache.Client
	now   Clock
}

// NewJobService builds a JobService with repository and cache.
func NewJobService(repo repository.JobRepository, cache *cache.Client) JobService {
	return &jobService{repo: repo, cache: cache, now: time.Now}
}

func (s *jobService) cacheKey(slug string) string {
	return "job:slug:" + slug
}

// ListPublic lists active jobs matching the filters.
func (s *jobService) ListPublic(ctx context.Context, q JobQuery) ([]model.Job, error) {
	return s.list(ctx, q, true)
}

// ListAll lists every job, active or not, for the admin table.
func (s *jobService) ListAll(ctx context.Context, q JobQuery) ([]model.Job, error) {
	return s.list(ctx, q, false)
}

func (s *jobService) list(ctx context.Context, q JobQuery, activeOnly bool) ([]model.Job, error) {
	filter, err := parseJobQuery(q)
	if err != nil {
		return nil, err
	}
	filter.ActiveOnly = activeOnly

	jobs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list jobs: %w", err))
	}
	if jobs == nil {
		jobs = []model.Job{}
	}
	return jobs, nil
}

// GetPublicBySlug returns an active job. Inactive jobs are reported as missing.
func (s *jobService) GetPublicBySlug(ctx context.Context, slug string) (*model.Job, error) {
	var cached model.Job
	if s.cache.GetJSON(ctx, s.cacheKey(slug), &cached) {
		return &cached, nil
	}

	job, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, storeErr(err, "Job not found")
	}
	if !job.IsActive {
		return nil, apperrors.NotFound("Job not found")
	}

	s.cache.SetJSON(ctx, s.cacheKey(slug), job, jobCacheTTL)
	return job, nil
}

func (s *jobService) Get(ctx context.Context, id uint) (*model.Job, error) {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Job not found")
	}
	return job, nil
}

// Create validates the job and inserts it under a fresh slug.
func (s *jobService) Create(ctx context.Context, in JobInput) (*model.Job, error) {
	job := &model.Job{
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Department:   strings.TrimSpace(in.Department),
		Location:     strings.TrimSpace(in.Location),
		Type:         in.Type,
		Experience:   strings.TrimSpace(in.Experience),
		SalaryMin:    in.SalaryMin,
		SalaryMax:    in.SalaryMax,
		Skills:       trimAll(in.Skills),
		Requirements: trimAll(in.Requirements),
		IsActive:     true,
	}
	if in.IsActive != nil {
		job.IsActive = *in.IsActive
	}
	if err := validateJob(job); err != nil {
		return nil, err
	}

	_, err := createWithSlug(ctx, job.Title, s.now, s.repo.SlugExists, func(slug string) error {
		job.ID = 0
		job.Slug = slug
		return s.repo.Create(ctx, job)
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

// Update applies patch to a job. The slug is kept so existing links stay valid.
func (s *jobService) Update(ctx context.Context, id uint, patch JobPatch) (*model.Job, error) {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Job not found")
	}

	if patch.Title != nil {
		job.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		job.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Department != nil {
		job.Department = strings.TrimSpace(*patch.Department)
	}
	if patch.Location != nil {
		job.Location = strings.TrimSpace(*patch.Location)
	}
	if patch.Type != nil {
		job.Type = *patch.Type
	}
	if patch.Experience != nil {
		job.Experience = strings.TrimSpace(*patch.Experience)
	}
	if patch.SalaryMin != nil {
		job.SalaryMin = patch.SalaryMin
	}
	if patch.SalaryMax != nil {
		job.SalaryMax = patch.SalaryMax
	}
	if patch.Skills != nil {
		job.Skills = trimAll(*patch.Skills)
	}
	if patch.Requirements != nil {
		job.Requirements = trimAll(*patch.Requirements)
	}
	if patch.IsActive != nil {
		job.IsActive = *patch.IsActive
	}

	if err := validateJob(job); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, job); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("update job: %w", err))
	}
	_ = s.cache.Delete(ctx, s.cacheKey(job.Slug))
	return job, nil
}

// validateJob enforces the cross-field rules on a fully assembled job.
func validateJob(job *model.Job) error {
	switch {
	case len(job.Title) < 3:
		return apperrors.Validation("title must be at least 3 characters")
	case len(job.Description) < 50:
		return apperrors.Validation("description must be at least 50 characters")
	case !job.Type.Valid():
		return apperrors.Validation("type must be one of FULL_TIME, PART_TIME, CONTRACT, INTERNSHIP")
	case len(job.Skills) == 0:
		return apperrors.Validation("skills must contain at least one skill")
	}
	for _, skill := range job.Skills {
		if skill == "" {
			return apperrors.Validation("skills must not contain empty values")
		}
	}
	if job.SalaryMin != nil && job.SalaryMin.IsNegative() {
		return apperrors.Validation("salaryMin must not be negative")
	}
	if job.SalaryMin != nil && job.SalaryMax != nil && job.SalaryMax.LessThan(*job.SalaryMin) {
		return apperrors.Validation("salaryMax must be greater than or equal to salaryMin")
	}
	return nil
}

func parseJobQuery(q JobQuery) (repository.JobFilter, error) {
	filter := repository.JobFilter{
		Location: strings.TrimSpace(q.Location),
		Search:   strings.TrimSpace(q.Search),
	}
	if t := strings.TrimSpace(q.Type); t != "" {
		filter.Type = model.JobType(strings.ToUpper(t))
		if !filter.Type.Valid() {
			return filter, apperrors.Validation("type must be one of FULL_TIME, PART_TIME, CONTRACT, INTERNSHIP")
		}
	}
	var err error
	if filter.MinSalary, err = parseSalary("minSalary", q.MinSalary); err != nil {
		return filter, err
	}
	if filter.MaxSalary, err = parseSalary("maxSalary", q.MaxSalary); err != nil {
		return filter, err
	}
	return filter, nil
}

func parseSalary(field, raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apperrors.Validation(field + " must be a number")
	}
	return &d, nil
}

// trimAll trims every entry; blank entries are kept (as "") so validation can reject them.
func trimAll(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = strings.TrimSpace(item)
	}
	return out
}
