package repository

import (
	"context"

	"gorm.io/gorm"

	"dataconsult/internal/model"
)

// CategoryWithCount is a category plus the number of posts in it.
type CategoryWithCount struct {
	model.Category
	BlogCount int64 `json:"blogCount"`
}

// CategoryRepository defines category persistence operations.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id uint) (*model.Category, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListWithCounts(ctx context.Context) ([]CategoryWithCount, error)
	Delete(ctx context.Context, id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return slugExists(ctx, r.db, &model.Category{}, slug)
}

// ListWithCounts lists categories by name with their post counts.
func (r *categoryRepository) ListWithCounts(ctx context.Context) ([]CategoryWithCount, error) {
	var rows []CategoryWithCount
	if err := r.db.WithContext(ctx).Model(&model.Category{}).
		Select("categories.*, (SELECT COUNT(*) FROM blogs WHERE blogs.category_id = categories.id) AS blog_count").
		Order("categories.name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Category{}, id).Error
}
