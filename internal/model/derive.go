package model

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// ExcerptMaxLength bounds a derived excerpt before the ellipsis is added.
	ExcerptMaxLength = 150

	wordsPerMinute = 200
)

var (
	markdownHeaderRe = regexp.MustCompile(`(?m)#{1,6}\s+`)
	markdownBoldRe   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	markdownItalicRe = regexp.MustCompile(`\*(.*?)\*`)
	markdownLinkRe   = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	markdownCodeRe   = regexp.MustCompile("`([^`]+)`")
	htmlTagRe        = regexp.MustCompile(`<[^>]*>`)

	nonWordRe        = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRe     = regexp.MustCompile(`\s+`)
	multiHyphenRe    = regexp.MustCompile(`--+`)
	trailingWordRe   = regexp.MustCompile(`\s+\S*$`)
)

// StripMarkup removes markdown and HTML decoration from content, leaving
// plain text.
func StripMarkup(content string) string {
	plain := markdownHeaderRe.ReplaceAllString(content, "")
	plain = markdownBoldRe.ReplaceAllString(plain, "$1")
	plain = markdownItalicRe.ReplaceAllString(plain, "$1")
	plain = markdownLinkRe.ReplaceAllString(plain, "$1")
	plain = markdownCodeRe.ReplaceAllString(plain, "$1")
	plain = htmlTagRe.ReplaceAllString(plain, "")
	return strings.TrimSpace(plain)
}

// GenerateExcerpt derives an excerpt from raw content: markup is stripped
// and, when the result exceeds the bound, it is cut at the last whitespace
// before the bound and an ellipsis marker is appended. Deriving from an
// already-short excerpt returns it unchanged.
func GenerateExcerpt(content string, maxLength int) string {
	plain := StripMarkup(content)
	if len(plain) <= maxLength {
		return plain
	}
	// The bound is in bytes; back up to a rune start so the cut never
	// splits a multi-byte character.
	cut := maxLength
	for cut > 0 && !utf8.RuneStart(plain[cut]) {
		cut--
	}
	return trailingWordRe.ReplaceAllString(plain[:cut], "") + "..."
}

// CalculateReadingTime estimates reading minutes at 200 words per minute,
// never less than 1.
func CalculateReadingTime(content string) int {
	words := len(strings.Fields(strings.TrimSpace(content)))
	minutes := int(math.Ceil(float64(words) / float64(wordsPerMinute)))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Slugify lowercases a title, strips non-word characters and collapses
// whitespace runs into single hyphens.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = nonWordRe.ReplaceAllString(slug, "")
	slug = whitespaceRe.ReplaceAllString(slug, "-")
	slug = multiHyphenRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// GeneratePostID builds a locally generated post id: creation timestamp plus
// the slugified title. Unique enough for local use; on the rare collision the
// last write wins.
func GeneratePostID(title string) string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), Slugify(title))
}

// ParseTags splits user-entered comma-separated tags, trims each entry and
// drops empty ones. Order is preserved.
func ParseTags(csv string) []string {
	parts := strings.Split(csv, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
