package repository

import (
	"context"

	"gorm.io/gorm"

	"dataconsult/internal/model"
)

// SolutionRepository defines solution persistence operations.
type SolutionRepository interface {
	Create(ctx context.Context, solution *model.Solution) error
	Update(ctx context.Context, solution *model.Solution) error
	FindByID(ctx context.Context, id uint) (*model.Solution, error)
	FindBySlug(ctx context.Context, slug string) (*model.Solution, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, activeOnly bool) ([]model.Solution, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type solutionRepository struct {
	db *gorm.DB
}

// NewSolutionRepository creates a new solution repository.
func NewSolutionRepository(db *gorm.DB) SolutionRepository {
	return &solutionRepository{db: db}
}

func (r *solutionRepository) Create(ctx context.Context, solution *model.Solution) error {
	return r.db.WithContext(ctx).Create(solution).Error
}

func (r *solutionRepository) Update(ctx context.Context, solution *model.Solution) error {
	return r.db.WithContext(ctx).Save(solution).Error
}

func (r *solutionRepository) FindByID(ctx context.Context, id uint) (*model.Solution, error) {
	var solution model.Solution
	if err := r.db.WithContext(ctx).First(&solution, id).Error; err != nil {
		return nil, err
	}
	return &solution, nil
}

func (r *solutionRepository) FindBySlug(ctx context.Context, slug string) (*model.Solution, error) {
	var solution model.Solution
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&solution).Error; err != nil {
		return nil, err
	}
	return &solution, nil
}

func (r *solutionRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return slugExists(ctx, r.db, &model.Solution{}, slug)
}

// List returns solutions in display order.
func (r *solutionRepository) List(ctx context.Context, activeOnly bool) ([]model.Solution, error) {
	q := r.db.WithContext(ctx).Model(&model.Solution{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var solutions []model.Solution
	if err := q.Order("sort_order ASC").Order("id ASC").Find(&solutions).Error; err != nil {
		return nil, err
	}
	return solutions, nil
}

func (r *solutionRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Solution{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
