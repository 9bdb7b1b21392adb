package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "dataconsult/internal/errors"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func TestBaseSlug(t *testing.T) {
	cases := map[string]string{
		"Data Engineer":            "data-engineer",
		"  Senior  ML / AI Lead! ": "senior-ml-ai-lead",
		"???":                      "item",
	}
	for in, want := range cases {
		assert.Equal(t, want, baseSlug(in), in)
	}
}

func TestCreateWithSlug(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	free := func(context.Context, string) (bool, error) { return false, nil }
	taken := func(context.Context, string) (bool, error) { return true, nil }

	t.Run("free base slug", func(t *testing.T) {
		got, err := createWithSlug(context.Background(), "Data Engineer", fixedClock(at), free, func(string) error { return nil })
		require.NoError(t, err)
		assert.Equal(t, "data-engineer", got)
	})

	t.Run("taken base slug gets timestamp", func(t *testing.T) {
		got, err := createWithSlug(context.Background(), "Data Engineer", fixedClock(at), taken, func(string) error { return nil })
		require.NoError(t, err)
		assert.Equal(t, "data-engineer-1700000000000", got)
	})

	t.Run("lost insert race retries with fresh suffix", func(t *testing.T) {
		var tried []string
		insert := func(slug string) error {
			tried = append(tried, slug)
			if len(tried) == 1 {
				return gorm.ErrDuplicatedKey
			}
			return nil
		}
		got, err := createWithSlug(context.Background(), "Data Engineer", fixedClock(at), free, insert)
		require.NoError(t, err)
		assert.Equal(t, []string{"data-engineer", "data-engineer-1700000000001"}, tried)
		assert.Equal(t, "data-engineer-1700000000001", got)
	})

	t.Run("exhausted retries is a conflict", func(t *testing.T) {
		calls := 0
		_, err := createWithSlug(context.Background(), "Data Engineer", fixedClock(at), free, func(string) error {
			calls++
			return gorm.ErrDuplicatedKey
		})
		assert.Equal(t, maxSlugAttempts, calls)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})

	t.Run("other insert errors are internal", func(t *testing.T) {
		_, err := createWithSlug(context.Background(), "Data Engineer", fixedClock(at), free, func(string) error {
			return errors.New("disk full")
		})
		assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
	})
}
