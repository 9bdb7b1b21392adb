package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "dataconsult/internal/errors"
	"dataconsult/internal/model"
	"dataconsult/internal/repository"
)

// CategoryInput creates or renames a category.
type CategoryInput struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// CategoryService exposes category operations.
type CategoryService interface {
	List(ctx context.Context) ([]repository.CategoryWithCount, error)
	Create(ctx context.Context, in CategoryInput) (*model.Category, error)
	Update(ctx context.Context, id uint, in CategoryInput) (*model.Category, error)
	Delete(ctx context.Context, id uint) error
}

type categoryService struct {
	repo     repository.CategoryRepository
	blogRepo repository.BlogRepository
	now      Clock
}

// NewCategoryService creates a category service.
func NewCategoryService(repo repository.CategoryRepository, blogRepo repository.BlogRepository) CategoryService {
	return &categoryService{repo: repo, blogRepo: blogRepo, now: time.Now}
}

func (s *categoryService) List(ctx context.Context) ([]repository.CategoryWithCount, error) {
	rows, err := s.repo.ListWithCounts(ctx)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list categories: %w", err))
	}
	if rows == nil {
		rows = []repository.CategoryWithCount{}
	}
	return rows, nil
}

func (s *categoryService) Create(ctx context.Context, in CategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(in.Name)
	if len(name) < 2 {
		return nil, apperrors.Validation("name must be at least 2 characters")
	}
	category := &model.Category{Name: name, Description: strings.TrimSpace(in.Description)}

	_, err := createWithSlug(ctx, name, s.now, s.repo.SlugExists, func(slug string) error {
		category.ID = 0
		category.Slug = slug
		return s.repo.Create(ctx, category)
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// Update renames a category. Its slug stays put so blog filter links keep working.
func (s *categoryService) Update(ctx context.Context, id uint, in CategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(in.Name)
	if len(name) < 2 {
		return nil, apperrors.Validation("name must be at least 2 characters")
	}
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Category not found")
	}
	category.Name = name
	category.Description = strings.TrimSpace(in.Description)
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("update category: %w", err))
	}
	return category, nil
}

// Delete removes a category that no post references.
func (s *categoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return storeErr(err, "Category not found")
	}
	count, err := s.blogRepo.CountByCategory(ctx, id)
	if err != nil {
		return apperrors.Internal(fmt.Errorf("count category blogs: %w", err))
	}
	if count > 0 {
		return apperrors.Validation("Cannot delete category with existing blogs")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal(fmt.Errorf("delete category: %w", err))
	}
	return nil
}
