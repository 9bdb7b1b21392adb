package repository

import (
	"context"

	"gorm.io/gorm"

	"dataconsult/internal/model"
)

// ContactRepository stores contact form submissions (append-only).
type ContactRepository interface {
	Create(ctx context.Context, s *model.ContactSubmission) error
	List(ctx context.Context) ([]model.ContactSubmission, error)
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, s *model.ContactSubmission) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *contactRepository) List(ctx context.Context) ([]model.ContactSubmission, error) {
	var items []model.ContactSubmission
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FAQRepository stores questions from the public FAQ page.
type FAQRepository interface {
	Create(ctx context.Context, q *model.FAQQuestion) error
	List(ctx context.Context) ([]model.FAQQuestion, error)
}

type faqRepository struct {
	db *gorm.DB
}

// NewFAQRepository creates a new FAQ question repository.
func NewFAQRepository(db *gorm.DB) FAQRepository {
	return &faqRepository{db: db}
}

func (r *faqRepository) Create(ctx context.Context, q *model.FAQQuestion) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *faqRepository) List(ctx context.Context) ([]model.FAQQuestion, error) {
	var items []model.FAQQuestion
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
