package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "dataconsult/internal/errors"
	"dataconsult/internal/service"
)

func TestRequestValidator(t *testing.T) {
	v := NewRequestValidator()

	valid := service.ContactInput{Name: "Ada", Email: "ada@example.com", Message: "Please call me back."}

	tests := []struct {
		name            string
		mutate          func(in *service.ContactInput)
		expectedMessage string
	}{
		{name: "valid", mutate: func(in *service.ContactInput) {}},
		{
			name:            "email without at sign",
			mutate:          func(in *service.ContactInput) { in.Email = "ada.example.com" },
			expectedMessage: "email must be a valid email address",
		},
		{
			name:            "missing name",
			mutate:          func(in *service.ContactInput) { in.Name = "" },
			expectedMessage: "name is required",
		},
		{
			name:            "short message",
			mutate:          func(in *service.ContactInput) { in.Message = "hi" },
			expectedMessage: "message must be at least 10 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			err := v.Validate(&in)

			if tt.expectedMessage == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
			assert.Equal(t, tt.expectedMessage, err.Error())
		})
	}
}

func TestRequestValidatorOneOf(t *testing.T) {
	err := NewRequestValidator().Validate(&service.JobInput{
		Title:       "Data Engineer",
		Description: "A description that is comfortably longer than fifty characters in total.",
		Location:    "Remote",
		Type:        "SEASONAL",
		Skills:      []string{"SQL"},
	})
	require.Error(t, err)
	assert.Equal(t, "type must be one of FULL_TIME, PART_TIME, CONTRACT, INTERNSHIP", err.Error())
}

func TestErrorHandler(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   apperrors.ErrorResponse
		expectLogged   bool
	}{
		{
			name:           "domain not found",
			err:            httpError(apperrors.NotFound("Job not found")),
			expectedStatus: http.StatusNotFound,
			expectedBody:   apperrors.ErrorResponse{Error: "Job not found", Code: "NOT_FOUND"},
		},
		{
			name:           "forbidden",
			err:            httpError(apperrors.ErrForbidden),
			expectedStatus: http.StatusForbidden,
			expectedBody:   apperrors.ErrorResponse{Error: "Forbidden", Code: "FORBIDDEN"},
		},
		{
			name:           "internal cause is hidden",
			err:            httpError(apperrors.Internal(errors.New("dial tcp: connection refused"))),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   apperrors.ErrorResponse{Error: "Internal server error", Code: "INTERNAL_ERROR"},
			expectLogged:   true,
		},
		{
			name:           "plain error",
			err:            errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   apperrors.ErrorResponse{Error: "Internal server error", Code: "INTERNAL_ERROR"},
			expectLogged:   true,
		},
		{
			name:           "echo not found",
			err:            echo.ErrNotFound,
			expectedStatus: http.StatusNotFound,
			expectedBody:   apperrors.ErrorResponse{Error: "Not Found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs.Reset()
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/jobs/x", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			ErrorHandler(logger)(tt.err, c)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			var body apperrors.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedBody, body)
			assert.NotContains(t, rec.Body.String(), "connection refused")
			assert.Equal(t, tt.expectLogged, logs.Len() > 0)
		})
	}
}

func TestBindAndValidateRejectsMalformedJSON(t *testing.T) {
	e := echo.New()
	e.Validator = NewRequestValidator()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewBufferString(`{"name":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	var in service.ContactInput
	err := bindAndValidate(c, &in)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "Invalid request body", he.Message.(apperrors.ErrorResponse).Error)
}

func TestLoggerFromFallsBack(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Same(t, fallback, LoggerFrom(req.Context(), fallback))

	attached := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.Same(t, attached, LoggerFrom(WithLogger(req.Context(), attached), fallback))
}
