package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dataconsult/internal/cache"
	apperrors "dataconsult/internal/errors"
	"dataconsult/internal/model"
	"dataconsult/internal/repository"
)

const (
	solutionsCacheKey = "solutions:active"
	solutionsCacheTTL = 10 * time.Minute
)

// SolutionInput is the full set of fields for creating a solution.
type SolutionInput struct {
	Title       string   `json:"title" validate:"required,min=3,max=255"`
	Description string   `json:"description" validate:"required,min=10"`
	Icon        string   `json:"icon" validate:"max=100"`
	Features    []string `json:"features" validate:"dive,required,max=255"`
	IsActive    *bool    `json:"isActive"`
	Order       int      `json:"order" validate:"min=0"`
}

// SolutionPatch carries the fields an admin edit touches. Nil means unchanged.
type SolutionPatch struct {
	Title       *string   `json:"title" validate:"omitempty,min=3,max=255"`
	Description *string   `json:"description" validate:"omitempty,min=10"`
	Icon        *string   `json:"icon" validate:"omitempty,max=100"`
	Features    *[]string `json:"features"`
	IsActive    *bool     `json:"isActive"`
	Order       *int      `json:"order" validate:"omitempty,min=0"`
}

// SolutionService exposes solution operations.
type SolutionService interface {
	ListActive(ctx context.Context) ([]model.Solution, error)
	GetActiveBySlug(ctx context.Context, slug string) (*model.Solution, error)
	ListAll(ctx context.Context) ([]model.Solution, error)
	Create(ctx context.Context, in SolutionInput) (*model.Solution, error)
	Update(ctx context.Context, id uint, patch SolutionPatch) (*model.Solution, error)
	Delete(ctx context.Context, id uint) error
}

type solutionService struct {
	repo  repository.SolutionRepository
	cache *cache.Client
	now   Clock
}

// NewSolutionService creates a solution service.
func NewSolutionService(repo repository.SolutionRepository, cache *cache.Client) SolutionService {
	return &solutionService{repo: repo, cache: cache, now: time.Now}
}

// ListActive returns the marketing list, served from cache when possible.
func (s *solutionService) ListActive(ctx context.Context) ([]model.Solution, error) {
	var cached []model.Solution
	if s.cache.GetJSON(ctx, solutionsCacheKey, &cached) {
		return cached, nil
	}

	solutions, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list solutions: %w", err))
	}
	if solutions == nil {
		solutions = []model.Solution{}
	}
	s.cache.SetJSON(ctx, solutionsCacheKey, solutions, solutionsCacheTTL)
	return solutions, nil
}

func (s *solutionService) GetActiveBySlug(ctx context.Context, slug string) (*model.Solution, error) {
	solution, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, storeErr(err, "Solution not found")
	}
	if !solution.IsActive {
		return nil, apperrors.NotFound("Solution not found")
	}
	return solution, nil
}

func (s *solutionService) ListAll(ctx context.Context) ([]model.Solution, error) {
	solutions, err := s.repo.List(ctx, false)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list solutions: %w", err))
	}
	if solutions == nil {
		solutions = []model.Solution{}
	}
	return solutions, nil
}

func (s *solutionService) Create(ctx context.Context, in SolutionInput) (*model.Solution, error) {
	solution := &model.Solution{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Icon:        strings.TrimSpace(in.Icon),
		Features:    trimAll(in.Features),
		IsActive:    true,
		Order:       in.Order,
	}
	if in.IsActive != nil {
		solution.IsActive = *in.IsActive
	}

	_, err := createWithSlug(ctx, solution.Title, s.now, s.repo.SlugExists, func(slug string) error {
		solution.ID = 0
		solution.Slug = slug
		return s.repo.Create(ctx, solution)
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return solution, nil
}

func (s *solutionService) Update(ctx context.Context, id uint, patch SolutionPatch) (*model.Solution, error) {
	solution, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Solution not found")
	}

	if patch.Title != nil {
		solution.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		solution.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Icon != nil {
		solution.Icon = strings.TrimSpace(*patch.Icon)
	}
	if patch.Features != nil {
		solution.Features = trimAll(*patch.Features)
	}
	if patch.IsActive != nil {
		solution.IsActive = *patch.IsActive
	}
	if patch.Order != nil {
		solution.Order = *patch.Order
	}

	if err := s.repo.Update(ctx, solution); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("update solution: %w", err))
	}
	s.invalidate(ctx)
	return solution, nil
}

func (s *solutionService) Delete(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.Internal(fmt.Errorf("delete solution: %w", err))
	}
	if !deleted {
		return apperrors.NotFound("Solution not found")
	}
	s.invalidate(ctx)
	return nil
}

func (s *solutionService) invalidate(ctx context.Context) {
	_ = s.cache.Delete(ctx, solutionsCacheKey)
}
