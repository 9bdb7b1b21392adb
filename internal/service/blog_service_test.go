package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "dataconsult/internal/errors"
	"dataconsult/internal/model"
	"dataconsult/internal/repository"
)

func TestBlogService_PublishedAtIsSetOnce(t *testing.T) {
	first := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	later := first.Add(72 * time.Hour)

	stored := &model.Blog{}
	blogs := new(MockBlogRepository)
	categories := new(MockCategoryRepository)
	categories.On("FindByID", mock.Anything, uint(2)).Return(&model.Category{ID: 2}, nil)
	blogs.On("SlugExists", mock.Anything, "pipelines-at-scale").Return(false, nil)
	blogs.On("Create", mock.Anything, mock.AnythingOfType("*model.Blog")).Run(func(args mock.Arguments) {
		*stored = *args.Get(1).(*model.Blog)
	}).Return(nil)
	blogs.On("Update", mock.Anything, mock.AnythingOfType("*model.Blog")).Run(func(args mock.Arguments) {
		*stored = *args.Get(1).(*model.Blog)
	}).Return(nil)
	blogs.On("FindByID", mock.Anything, uint(1)).Return(stored, nil)

	svc := NewBlogService(blogs, categories).(*blogService)
	svc.now = fixedClock(first)

	created, err := svc.Create(context.Background(), 1, BlogInput{
		Title:      "Pipelines at Scale",
		Content:    "A long enough body for the post.",
		Status:     model.BlogStatusPublished,
		CategoryID: 2,
	})
	require.NoError(t, err)
	require.NotNil(t, created.PublishedAt)
	assert.True(t, first.Equal(*created.PublishedAt))

	svc.now = fixedClock(later)
	draft := model.BlogStatusDraft
	_, err = svc.Update(context.Background(), 1, BlogPatch{Status: &draft})
	require.NoError(t, err)

	published := model.BlogStatusPublished
	title := "Pipelines at Scale, revised"
	updated, err := svc.Update(context.Background(), 1, BlogPatch{Status: &published, Title: &title})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	assert.True(t, first.Equal(*updated.PublishedAt), "publishedAt must keep its first value")
	assert.Equal(t, "pipelines-at-scale", updated.Slug)
}

func TestBlogService_DraftHasNoPublishedAt(t *testing.T) {
	blog := &model.Blog{Status: model.BlogStatusDraft}
	stampPublished(blog, time.Now())
	assert.Nil(t, blog.PublishedAt)
}

func TestBlogService_CreateRequiresCategory(t *testing.T) {
	blogs := new(MockBlogRepository)
	categories := new(MockCategoryRepository)
	categories.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

	_, err := NewBlogService(blogs, categories).Create(context.Background(), 1, BlogInput{
		Title: "Orphan", Content: "A long enough body for the post.", CategoryID: 9,
	})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	blogs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBlogService_ListPublishedPaging(t *testing.T) {
	blogs := new(MockBlogRepository)
	blogs.On("ListPublished", mock.Anything, repository.BlogFilter{Offset: 0, Limit: 9}).Return([]model.Blog{}, int64(0), nil)
	blogs.On("ListPublished", mock.Anything, repository.BlogFilter{CategorySlug: "ml", Offset: 100, Limit: 50}).Return([]model.Blog{{ID: 1}}, int64(101), nil)

	svc := NewBlogService(blogs, new(MockCategoryRepository))

	page, err := svc.ListPublished(context.Background(), BlogQuery{})
	require.NoError(t, err)
	assert.Equal(t, Pagination{Page: 1, Limit: 9, Total: 0, TotalPages: 0}, page.Pagination)

	page, err = svc.ListPublished(context.Background(), BlogQuery{Category: "ml", Page: "3", Limit: "500"})
	require.NoError(t, err)
	assert.Equal(t, Pagination{Page: 3, Limit: 50, Total: 101, TotalPages: 3}, page.Pagination)

	_, err = svc.ListPublished(context.Background(), BlogQuery{Page: "zero"})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	blogs.AssertExpectations(t)
}

func TestBlogService_GetPublishedBySlugHidesDrafts(t *testing.T) {
	blogs := new(MockBlogRepository)
	blogs.On("FindBySlug", mock.Anything, "wip").Return(&model.Blog{Status: model.BlogStatusDraft}, nil)

	_, err := NewBlogService(blogs, new(MockCategoryRepository)).GetPublishedBySlug(context.Background(), "wip")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestCategoryService_Delete(t *testing.T) {
	tests := []struct {
		name         string
		setupMock    func(*MockCategoryRepository, *MockBlogRepository)
		expectError  bool
		expectedKind apperrors.Kind
	}{
		{
			name: "unused category",
			setupMock: func(c *MockCategoryRepository, b *MockBlogRepository) {
				c.On("FindByID", mock.Anything, uint(1)).Return(&model.Category{ID: 1}, nil)
				b.On("CountByCategory", mock.Anything, uint(1)).Return(int64(0), nil)
				c.On("Delete", mock.Anything, uint(1)).Return(nil)
			},
		},
		{
			name: "category in use",
			setupMock: func(c *MockCategoryRepository, b *MockBlogRepository) {
				c.On("FindByID", mock.Anything, uint(1)).Return(&model.Category{ID: 1}, nil)
				b.On("CountByCategory", mock.Anything, uint(1)).Return(int64(2), nil)
			},
			expectError:  true,
			expectedKind: apperrors.KindValidation,
		},
		{
			name: "missing category",
			setupMock: func(c *MockCategoryRepository, b *MockBlogRepository) {
				c.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectError:  true,
			expectedKind: apperrors.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categories := new(MockCategoryRepository)
			blogs := new(MockBlogRepository)
			tt.setupMock(categories, blogs)

			err := NewCategoryService(categories, blogs).Delete(context.Background(), 1)
			if tt.expectError {
				assert.Equal(t, tt.expectedKind, apperrors.KindOf(err))
				categories.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}
			categories.AssertExpectations(t)
			blogs.AssertExpectations(t)
		})
	}
}

func TestCategoryService_CreateShortName(t *testing.T) {
	_, err := NewCategoryService(new(MockCategoryRepository), new(MockBlogRepository)).
		Create(context.Background(), CategoryInput{Name: " a "})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}
