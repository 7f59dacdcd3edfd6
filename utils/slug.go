package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

// Slug titles are capped to their first few words so long titles stay
// readable as URLs.
const slugWordLimit = 5

var reHyphens = regexp.MustCompile(`-+`)

// Slugify turns free text into a URL-safe slug: lowercase, diacritics
// stripped, non-alphanumerics collapsed to single hyphens, limited to the
// first five words.
func Slugify(text string) string {
	words := strings.Fields(text)
	if len(words) > slugWordLimit {
		words = words[:slugWordLimit]
	}
	s := strings.ToLower(strings.Join(words, " "))

	// Strip diacritics (é -> e).
	var stripped []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		stripped = append(stripped, r)
	}

	var b strings.Builder
	for _, r := range stripped {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
	}

	out := reHyphens.ReplaceAllString(b.String(), "-")
	return strings.Trim(out, "-")
}

// UniqueSlug probes the given table/column and appends -1, -2, ... until the
// candidate is free. This is a best-effort check: two concurrent creators can
// both pass it, so the caller must still treat gorm.ErrDuplicatedKey on
// insert as the authoritative duplicate signal.
func UniqueSlug(db *gorm.DB, table, column, base string) (string, error) {
	slug := base
	suffix := 1

	for {
		var count int64
		if err := db.Table(table).
			Where(fmt.Sprintf("%s = ?", column), slug).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, suffix)
		suffix++
	}
}
