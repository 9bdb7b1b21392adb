package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dataconsult/internal/auth"
	"dataconsult/internal/service"
)

// CreatedResponse acknowledges a public submission.
type CreatedResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

// SubmissionHandler serves the public contact and FAQ forms.
type SubmissionHandler struct {
	contact service.ContactService
	faq     service.FAQService
}

// NewSubmissionHandler creates a submission handler.
func NewSubmissionHandler(contact service.ContactService, faq service.FAQService) *SubmissionHandler {
	return &SubmissionHandler{contact: contact, faq: faq}
}

// SubmitContact godoc
// @Summary Send a contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param message body service.ContactInput true "Contact form"
// @Success 201 {object} CreatedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /contact [post]
func (h *SubmissionHandler) SubmitContact(c echo.Context) error {
	var in service.ContactInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	sub, err := h.contact.Submit(c.Request().Context(), in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, CreatedResponse{Message: "Message sent successfully", ID: sub.ID})
}

// AskQuestion godoc
// @Summary Ask a question from the FAQ page
// @Tags contact
// @Accept json
// @Produce json
// @Param question body service.FAQQuestionInput true "Question"
// @Success 201 {object} CreatedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /faq-questions [post]
func (h *SubmissionHandler) AskQuestion(c echo.Context) error {
	var in service.FAQQuestionInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	q, err := h.faq.Ask(c.Request().Context(), in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, CreatedResponse{Message: "Question submitted successfully", ID: q.ID})
}

// ListContact godoc
// @Summary List contact messages
// @Tags admin
// @Produce json
// @Security SessionCookie
// @Success 200 {array} model.ContactSubmission
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/contact [get]
func (h *SubmissionHandler) ListContact(c echo.Context) error {
	if _, err := auth.RequireAdmin(c.Request().Context()); err != nil {
		return httpError(err)
	}
	items, err := h.contact.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// ListQuestions godoc
// @Summary List FAQ questions
// @Tags admin
// @Produce json
// @Security SessionCookie
// @Success 200 {array} model.FAQQuestion
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/faq-questions [get]
func (h *SubmissionHandler) ListQuestions(c echo.Context) error {
	if _, err := auth.RequireAdmin(c.Request().Context()); err != nil {
		return httpError(err)
	}
	items, err := h.faq.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}
