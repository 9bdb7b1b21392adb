package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "dataconsult/internal/errors"
	"dataconsult/internal/model"
	"dataconsult/internal/repository"
)

func validJobInput() JobInput {
	return JobInput{
		Title:       "Data Engineer",
		Description: strings.Repeat("Build and run batch and streaming pipelines. ", 2),
		Location:    "Remote",
		Type:        model.JobTypeFullTime,
		Skills:      []string{"SQL", "Python"},
	}
}

func decimalPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestJobService_CreateSlugCollision(t *testing.T) {
	repo := new(MockJobRepository)
	repo.On("SlugExists", mock.Anything, "data-engineer").Return(true, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(j *model.Job) bool {
		return j.Slug == "data-engineer-1700000000000"
	})).Return(nil)

	svc := NewJobService(repo, nil).(*jobService)
	svc.now = fixedClock(time.UnixMilli(1700000000000))

	job, err := svc.Create(context.Background(), validJobInput())
	require.NoError(t, err)
	assert.Equal(t, "data-engineer-1700000000000", job.Slug)
	assert.True(t, job.IsActive)
	repo.AssertExpectations(t)
}

func TestJobService_CreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*JobInput)
		want   string
	}{
		{"salary max below min", func(in *JobInput) { in.SalaryMin, in.SalaryMax = decimalPtr(90000), decimalPtr(50000) }, "salaryMax"},
		{"blank skill", func(in *JobInput) { in.Skills = []string{"SQL", "  "} }, "skills"},
		{"no skills", func(in *JobInput) { in.Skills = nil }, "skills"},
		{"short description", func(in *JobInput) { in.Description = "too short" }, "description"},
		{"bad type", func(in *JobInput) { in.Type = "FREELANCE" }, "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockJobRepository)
			in := validJobInput()
			tt.mutate(&in)

			_, err := NewJobService(repo, nil).Create(context.Background(), in)
			require.Error(t, err)
			assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
			assert.Contains(t, err.Error(), tt.want)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestJobService_ListPublicFilters(t *testing.T) {
	repo := new(MockJobRepository)
	repo.On("List", mock.Anything, repository.JobFilter{
		Type:       model.JobTypeContract,
		Location:   "berlin",
		Search:     "spark",
		MinSalary:  decimalPtr(40000),
		ActiveOnly: true,
	}).Return(nil, nil)

	jobs, err := NewJobService(repo, nil).ListPublic(context.Background(), JobQuery{
		Type: "contract", Location: " berlin ", Search: "spark", MinSalary: "40000",
	})
	require.NoError(t, err)
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)

	_, err = NewJobService(repo, nil).ListPublic(context.Background(), JobQuery{MaxSalary: "lots"})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	repo.AssertExpectations(t)
}

func TestJobService_GetPublicBySlugHidesInactive(t *testing.T) {
	repo := new(MockJobRepository)
	repo.On("FindBySlug", mock.Anything, "closed").Return(&model.Job{Slug: "closed", IsActive: false}, nil)
	repo.On("FindBySlug", mock.Anything, "gone").Return(nil, gorm.ErrRecordNotFound)

	svc := NewJobService(repo, nil)
	_, err := svc.GetPublicBySlug(context.Background(), "closed")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	_, err = svc.GetPublicBySlug(context.Background(), "gone")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestJobService_UpdateKeepsSlug(t *testing.T) {
	existing := &model.Job{
		ID:          3,
		Title:       "Data Engineer",
		Slug:        "data-engineer",
		Description: validJobInput().Description,
		Type:        model.JobTypeFullTime,
		Skills:      []string{"SQL"},
		IsActive:    true,
	}
	repo := new(MockJobRepository)
	repo.On("FindByID", mock.Anything, uint(3)).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Job")).Return(nil)

	title := "Senior Data Engineer"
	inactive := false
	job, err := NewJobService(repo, nil).Update(context.Background(), 3, JobPatch{Title: &title, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "data-engineer", job.Slug)
	assert.Equal(t, title, job.Title)
	assert.False(t, job.IsActive)
	repo.AssertExpectations(t)
}
