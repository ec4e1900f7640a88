package service

import (
	"strings"

	"jobboard/database"
	"jobboard/util/random"

	"github.com/gosimple/slug"
)

// orderClause maps an API ordering value ("title", "-created_at") onto
// a whitelisted SQL clause, falling back to def for anything else.
func orderClause(ordering string, allowed map[string]string, def string) string {
	ordering = strings.TrimSpace(ordering)
	if ordering == "" {
		return def
	}
	desc := strings.HasPrefix(ordering, "-")
	column, ok := allowed[strings.TrimPrefix(ordering, "-")]
	if !ok {
		return def
	}
	if desc {
		return column + " DESC"
	}
	return column
}

// uniqueSlug derives a URL-safe slug from value and de-duplicates it
// against the given table with a short random suffix.
func uniqueSlug(table, value string) (string, error) {
	base := slug.Make(value)
	if base == "" {
		base = random.Seq(8)
	}
	db := database.GetDB()
	candidate := base
	for attempt := 0; attempt < 5; attempt++ {
		var count int64
		if err := db.Table(table).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = base + "-" + random.Seq(6)
	}
	return candidate, nil
}
