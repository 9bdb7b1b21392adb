package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// slugExists reports whether a row of the given model already uses slug.
func slugExists(ctx context.Context, db *gorm.DB, model interface{}, slug string) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(model).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// likeEscaper quotes LIKE wildcards with "!". A backslash would need
// different literal quoting on MySQL than on postgres and sqlite.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// likePattern builds a lower-cased substring pattern for case-insensitive
// LIKE matching. Clauses using it must end in likeEscape.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}

const likeEscape = " ESCAPE '!'"
