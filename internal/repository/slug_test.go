package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikePattern(t *testing.T) {
	tests := []struct {
		name     string
		term     string
		expected string
	}{
		{name: "plain", term: "  Data Engineer ", expected: "%data engineer%"},
		{name: "percent", term: "100%", expected: "%100!%%"},
		{name: "underscore", term: "snake_case", expected: "%snake!_case%"},
		{name: "escape char", term: "go!", expected: "%go!!%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, likePattern(tt.term))
		})
	}
}
