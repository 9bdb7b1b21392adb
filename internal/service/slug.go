package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	apperrors "dataconsult/internal/errors"
)

// maxSlugAttempts bounds re-allocation when a concurrent insert wins the slug.
const maxSlugAttempts = 3

// Clock returns the current time. Services take one so tests can pin it.
type Clock func() time.Time

// baseSlug derives the URL slug for a title: lowercase, [a-z0-9-] only.
func baseSlug(title string) string {
	s := slug.Make(title)
	if s == "" {
		return "item"
	}
	return s
}

// slugTaken reports whether a slug is already used by some row.
type slugTaken func(ctx context.Context, slug string) (bool, error)

// createWithSlug allocates a slug for title and runs insert with it. A taken
// base slug gets a "-<unix millis>" suffix. If the insert still hits the
// unique index (two creates raced on the same slug) a fresh suffix is tried,
// and the caller sees a Conflict only after every attempt lost.
func createWithSlug(ctx context.Context, title string, now Clock, taken slugTaken, insert func(slug string) error) (string, error) {
	base := baseSlug(title)

	candidate := base
	exists, err := taken(ctx, candidate)
	if err != nil {
		return "", apperrors.Internal(fmt.Errorf("check slug: %w", err))
	}
	if exists {
		candidate = suffixed(base, now(), 0)
	}

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		err := insert(candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", apperrors.Internal(fmt.Errorf("insert: %w", err))
		}
		candidate = suffixed(base, now(), attempt+1)
	}
	return "", apperrors.Conflict("An item with a similar title was created at the same time, please retry")
}

func suffixed(base string, at time.Time, attempt int) string {
	return fmt.Sprintf("%s-%d", base, at.UnixMilli()+int64(attempt))
}
