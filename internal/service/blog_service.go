package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "dataconsult/internal/errors"
	"dataconsult/internal/model"
	"dataconsult/internal/repository"
)

const (
	defaultBlogPage  = 1
	defaultBlogLimit = 9
	maxBlogLimit     = 50
)

// BlogInput is the full set of fields for creating a post.
type BlogInput struct {
	Title      string           `json:"title" validate:"required,min=3,max=255"`
	Excerpt    string           `json:"excerpt" validate:"max=500"`
	Content    string           `json:"content" validate:"required,min=20"`
	CoverImage *string          `json:"coverImage" validate:"omitempty,url,max=512"`
	Tags       []string         `json:"tags" validate:"dive,required,max=50"`
	Status     model.BlogStatus `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"`
	CategoryID uint             `json:"categoryId" validate:"required"`
}

// BlogPatch carries the fields an admin edit touches. Nil means unchanged;
// coverImage may be set to null explicitly to remove it.
type BlogPatch struct {
	Title      *string           `json:"title" validate:"omitempty,min=3,max=255"`
	Excerpt    *string           `json:"excerpt" validate:"omitempty,max=500"`
	Content    *string           `json:"content" validate:"omitempty,min=20"`
	CoverImage OptionalString    `json:"coverImage" swaggertype:"string"`
	Tags       *[]string         `json:"tags"`
	Status     *model.BlogStatus `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"`
	CategoryID *uint             `json:"categoryId"`
}

// BlogQuery holds the raw public list parameters.
type BlogQuery struct {
	Category string `query:"category"`
	Search   string `query:"search"`
	Page     string `query:"page"`
	Limit    string `query:"limit"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// BlogPage is a page of published posts.
type BlogPage struct {
	Blogs      []model.Blog `json:"blogs"`
	Pagination Pagination   `json:"pagination"`
}

// BlogService exposes blog operations.
type BlogService interface {
	ListPublished(ctx context.Context, q BlogQuery) (*BlogPage, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*model.Blog, error)
	ListAll(ctx context.Context) ([]model.Blog, error)
	Get(ctx context.Context, id uint) (*model.Blog, error)
	Create(ctx context.Context, authorID uint, in BlogInput) (*model.Blog, error)
	Update(ctx context.Context, id uint, patch BlogPatch) (*model.Blog, error)
	Delete(ctx context.Context, id uint) error
}

type blogService struct {
	repo         repository.BlogRepository
	categoryRepo repository.CategoryRepository
	now          Clock
}

// NewBlogService creates a blog service.
func NewBlogService(repo repository.BlogRepository, categoryRepo repository.CategoryRepository) BlogService {
	return &blogService{repo: repo, categoryRepo: categoryRepo, now: time.Now}
}

func (s *blogService) ListPublished(ctx context.Context, q BlogQuery) (*BlogPage, error) {
	page, err := parsePositive("page", q.Page, defaultBlogPage)
	if err != nil {
		return nil, err
	}
	limit, err := parsePositive("limit", q.Limit, defaultBlogLimit)
	if err != nil {
		return nil, err
	}
	if limit > maxBlogLimit {
		limit = maxBlogLimit
	}

	blogs, total, err := s.repo.ListPublished(ctx, repository.BlogFilter{
		CategorySlug: strings.TrimSpace(q.Category),
		Search:       strings.TrimSpace(q.Search),
		Offset:       (page - 1) * limit,
		Limit:        limit,
	})
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list published blogs: %w", err))
	}
	if blogs == nil {
		blogs = []model.Blog{}
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &BlogPage{
		Blogs:      blogs,
		Pagination: Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages},
	}, nil
}

// GetPublishedBySlug returns a published post. Drafts are reported as missing.
func (s *blogService) GetPublishedBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	blog, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, storeErr(err, "Blog not found")
	}
	if blog.Status != model.BlogStatusPublished {
		return nil, apperrors.NotFound("Blog not found")
	}
	return blog, nil
}

func (s *blogService) ListAll(ctx context.Context) ([]model.Blog, error) {
	blogs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list blogs: %w", err))
	}
	if blogs == nil {
		blogs = []model.Blog{}
	}
	return blogs, nil
}

func (s *blogService) Get(ctx context.Context, id uint) (*model.Blog, error) {
	blog, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Blog not found")
	}
	return blog, nil
}

func (s *blogService) Create(ctx context.Context, authorID uint, in BlogInput) (*model.Blog, error) {
	status := in.Status
	if status == "" {
		status = model.BlogStatusDraft
	}
	if !status.Valid() {
		return nil, apperrors.Validation("status must be one of DRAFT, PUBLISHED")
	}
	if err := s.requireCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	blog := &model.Blog{
		Title:      strings.TrimSpace(in.Title),
		Excerpt:    strings.TrimSpace(in.Excerpt),
		Content:    in.Content,
		CoverImage: trimOptional(in.CoverImage),
		Tags:       trimAll(in.Tags),
		Status:     status,
		CategoryID: in.CategoryID,
	}
	if authorID != 0 {
		blog.AuthorID = &authorID
	}
	stampPublished(blog, s.now())

	_, err := createWithSlug(ctx, blog.Title, s.now, s.repo.SlugExists, func(slug string) error {
		blog.ID = 0
		blog.Slug = slug
		return s.repo.Create(ctx, blog)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, blog.ID)
}

// Update applies patch. The slug never changes and publishedAt, once set, is kept.
func (s *blogService) Update(ctx context.Context, id uint, patch BlogPatch) (*model.Blog, error) {
	blog, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Blog not found")
	}

	if patch.Title != nil {
		blog.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Excerpt != nil {
		blog.Excerpt = strings.TrimSpace(*patch.Excerpt)
	}
	if patch.Content != nil {
		blog.Content = *patch.Content
	}
	if patch.CoverImage.Set {
		blog.CoverImage = trimOptional(patch.CoverImage.Value)
	}
	if patch.Tags != nil {
		blog.Tags = trimAll(*patch.Tags)
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, apperrors.Validation("status must be one of DRAFT, PUBLISHED")
		}
		blog.Status = *patch.Status
	}
	if patch.CategoryID != nil && *patch.CategoryID != blog.CategoryID {
		if err := s.requireCategory(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
		blog.CategoryID = *patch.CategoryID
		blog.Category = nil
	}
	stampPublished(blog, s.now())

	if err := s.repo.Update(ctx, blog); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("update blog: %w", err))
	}
	return s.Get(ctx, blog.ID)
}

func (s *blogService) Delete(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.Internal(fmt.Errorf("delete blog: %w", err))
	}
	if !deleted {
		return apperrors.NotFound("Blog not found")
	}
	return nil
}

func (s *blogService) requireCategory(ctx context.Context, id uint) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Validation("Category not found")
		}
		return apperrors.Internal(fmt.Errorf("find category: %w", err))
	}
	return nil
}

// stampPublished sets publishedAt on the first move to PUBLISHED only.
func stampPublished(blog *model.Blog, now time.Time) {
	if blog.Status == model.BlogStatusPublished && blog.PublishedAt == nil {
		t := now.UTC()
		blog.PublishedAt = &t
	}
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

func parsePositive(field, raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, apperrors.Validation(field + " must be a positive integer")
	}
	return n, nil
}
