package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "dataconsult/internal/errors"
	"dataconsult/internal/model"
	"dataconsult/internal/repository"
)

// ContactInput is the public contact form.
type ContactInput struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Company string `json:"company" validate:"max=255"`
	Phone   string `json:"phone" validate:"max=30"`
	Subject string `json:"subject" validate:"max=255"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

// FAQQuestionInput is a question asked from the FAQ page.
type FAQQuestionInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Question string `json:"question" validate:"required,min=10,max=2000"`
}

// ContactService stores contact form submissions.
type ContactService interface {
	Submit(ctx context.Context, in ContactInput) (*model.ContactSubmission, error)
	List(ctx context.Context) ([]model.ContactSubmission, error)
}

type contactService struct {
	repo     repository.ContactRepository
	notifier NotificationService
}

// NewContactService creates a contact service.
func NewContactService(repo repository.ContactRepository, notifier NotificationService) ContactService {
	return &contactService{repo: repo, notifier: notifier}
}

func (s *contactService) Submit(ctx context.Context, in ContactInput) (*model.ContactSubmission, error) {
	sub := &model.ContactSubmission{
		Name:    strings.TrimSpace(in.Name),
		Email:   normalizeEmail(in.Email),
		Company: strings.TrimSpace(in.Company),
		Phone:   strings.TrimSpace(in.Phone),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("create contact submission: %w", err))
	}

	title := "New contact message"
	if sub.Subject != "" {
		title = "New contact message: " + sub.Subject
	}
	s.notifier.Notify(ctx, model.NotificationContact, title,
		fmt.Sprintf("%s <%s> sent a message", sub.Name, sub.Email), "/admin/contact")
	return sub, nil
}

func (s *contactService) List(ctx context.Context) ([]model.ContactSubmission, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list contact submissions: %w", err))
	}
	return items, nil
}

// FAQService stores questions from the public FAQ page.
type FAQService interface {
	Ask(ctx context.Context, in FAQQuestionInput) (*model.FAQQuestion, error)
	List(ctx context.Context) ([]model.FAQQuestion, error)
}

type faqService struct {
	repo     repository.FAQRepository
	notifier NotificationService
}

// NewFAQService creates an FAQ question service.
func NewFAQService(repo repository.FAQRepository, notifier NotificationService) FAQService {
	return &faqService{repo: repo, notifier: notifier}
}

func (s *faqService) Ask(ctx context.Context, in FAQQuestionInput) (*model.FAQQuestion, error) {
	q := &model.FAQQuestion{
		Name:     strings.TrimSpace(in.Name),
		Email:    normalizeEmail(in.Email),
		Question: strings.TrimSpace(in.Question),
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("create faq question: %w", err))
	}
	s.notifier.Notify(ctx, model.NotificationFAQQuestion, "New FAQ question",
		fmt.Sprintf("%s asked: %s", q.Name, truncate(q.Question, 140)), "/admin/faq-questions")
	return q, nil
}

func (s *faqService) List(ctx context.Context) ([]model.FAQQuestion, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list faq questions: %w", err))
	}
	return items, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
