package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", Validation("title must be at least 3 characters"), http.StatusBadRequest, "title must be at least 3 characters"},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "Forbidden"},
		{"not found", NotFound("Job not found"), http.StatusNotFound, "Job not found"},
		{"conflict", Conflict("You have already applied for this job"), http.StatusConflict, "You have already applied for this job"},
		{"wrapped", fmt.Errorf("create job: %w", NotFound("Job not found")), http.StatusNotFound, "Job not found"},
		{"internal", Internal(errors.New("dial tcp: connection refused")), http.StatusInternalServerError, "Internal server error"},
		{"foreign", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tc.err)
			assert.Equal(t, tc.status, httpErr.StatusCode)
			assert.Equal(t, tc.msg, httpErr.ToErrorResponse().Error)
		})
	}
}

func TestErrorIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("gate: %w", &Error{Kind: KindForbidden, Message: "HR or admin only"})
	assert.True(t, errors.Is(err, ErrForbidden))
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, KindForbidden, KindOf(err))
	assert.Equal(t, KindInternal, KindOf(errors.New("x")))
}
