package repository

import (
	"context"

	"gorm.io/gorm"

	"dataconsult/internal/model"
)

// BlogFilter narrows the public blog listing.
type BlogFilter struct {
	CategorySlug string
	Search       string
	Offset       int
	Limit        int
}

// BlogRepository defines blog persistence operations.
type BlogRepository interface {
	Create(ctx context.Context, blog *model.Blog) error
	Update(ctx context.Context, blog *model.Blog) error
	FindByID(ctx context.Context, id uint) (*model.Blog, error)
	FindBySlug(ctx context.Context, slug string) (*model.Blog, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListPublished(ctx context.Context, filter BlogFilter) ([]model.Blog, int64, error)
	ListAll(ctx context.Context) ([]model.Blog, error)
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a new blog repository.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *model.Blog) error {
	return r.db.WithContext(ctx).Omit("Category", "Author").Create(blog).Error
}

func (r *blogRepository) Update(ctx context.Context, blog *model.Blog) error {
	return r.db.WithContext(ctx).Omit("Category", "Author").Save(blog).Error
}

func (r *blogRepository) FindByID(ctx context.Context, id uint) (*model.Blog, error) {
	var blog model.Blog
	if err := r.db.WithContext(ctx).Preload("Category").First(&blog, id).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) FindBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	var blog model.Blog
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Author").
		Where("slug = ?", slug).
		First(&blog).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return slugExists(ctx, r.db, &model.Blog{}, slug)
}

// ListPublished returns one page of published posts and the total match count.
func (r *blogRepository) ListPublished(ctx context.Context, filter BlogFilter) ([]model.Blog, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Blog{}).
		Where("blogs.status = ?", model.BlogStatusPublished)
	if filter.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = blogs.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		q = q.Where("(LOWER(blogs.title) LIKE ?"+likeEscape+
			" OR LOWER(blogs.excerpt) LIKE ?"+likeEscape+
			" OR LOWER(blogs.content) LIKE ?"+likeEscape+")",
			pattern, pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var blogs []model.Blog
	if err := q.Preload("Category").
		Order("blogs.published_at DESC").
		Order("blogs.id DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&blogs).Error; err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

// ListAll returns every post regardless of status, most recently updated first.
func (r *blogRepository) ListAll(ctx context.Context) ([]model.Blog, error) {
	var blogs []model.Blog
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Order("updated_at DESC").
		Find(&blogs).Error; err != nil {
		return nil, err
	}
	return blogs, nil
}

// CountByCategory counts posts referencing a category.
func (r *blogRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Blog{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *blogRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Blog{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
