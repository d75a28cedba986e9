package model

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestCalculateReadingTimeMinimum(t *testing.T) {
	require.Equal(t, 1, CalculateReadingTime(""))
	require.Equal(t, 1, CalculateReadingTime("a few words only"))
}

func TestCalculateReadingTimeMonotonic(t *testing.T) {
	prev := 0
	for _, words := range []int{1, 150, 200, 201, 450, 1000, 5000} {
		content := strings.Repeat("word ", words)
		minutes := CalculateReadingTime(content)
		require.GreaterOrEqual(t, minutes, 1)
		require.GreaterOrEqual(t, minutes, prev, "reading time must not decrease with word count")
		prev = minutes
	}
	require.Equal(t, 2, CalculateReadingTime(strings.Repeat("word ", 201)))
}

func TestGenerateExcerptStripsMarkup(t *testing.T) {
	content := "# Title\n\nSome **bold** and *italic* text with a [link](https://example.com) and `code`."
	excerpt := GenerateExcerpt(content, ExcerptMaxLength)
	require.NotContains(t, excerpt, "#")
	require.NotContains(t, excerpt, "**")
	require.NotContains(t, excerpt, "](")
	require.NotContains(t, excerpt, "`")
	require.Contains(t, excerpt, "bold")
	require.Contains(t, excerpt, "link")
}

func TestGenerateExcerptTruncatesAtWordBoundary(t *testing.T) {
	content := strings.Repeat("lorem ipsum dolor ", 40)
	excerpt := GenerateExcerpt(content, ExcerptMaxLength)
	require.True(t, strings.HasSuffix(excerpt, "..."))
	require.LessOrEqual(t, len(excerpt), ExcerptMaxLength+3)
	body := strings.TrimSuffix(excerpt, "...")
	require.False(t, strings.HasSuffix(body, " "), "cut must land on a word boundary")
}

func TestGenerateExcerptKeepsRuneBoundaries(t *testing.T) {
	// One long multi-byte word with no whitespace before the byte bound.
	content := strings.Repeat("日本語のテキスト", 20)
	excerpt := GenerateExcerpt(content, ExcerptMaxLength)
	require.True(t, utf8.ValidString(excerpt), "cut must not split a rune")
	require.True(t, strings.HasSuffix(excerpt, "..."))
	require.LessOrEqual(t, len(excerpt), ExcerptMaxLength+3)
}

func TestGenerateExcerptIdempotent(t *testing.T) {
	short := "A short excerpt that fits within the bound."
	require.Equal(t, short, GenerateExcerpt(short, ExcerptMaxLength))
	require.Equal(t, short, GenerateExcerpt(GenerateExcerpt(short, ExcerptMaxLength), ExcerptMaxLength))
}

func TestSlugify(t *testing.T) {
	require.Equal(t, "the-art-of-storytelling", Slugify("The Art of Storytelling"))
	require.Equal(t, "writers-block-myth", Slugify("Writer's   Block: Myth!"))
	require.Equal(t, "a-b", Slugify("a --- b"))
}

func TestGeneratePostID(t *testing.T) {
	id := GeneratePostID("My First Post")
	require.Regexp(t, `^\d+-my-first-post$`, id)
}

func TestParseTags(t *testing.T) {
	require.Equal(t, []string{"writing", "creativity", "voice"}, ParseTags(" writing, creativity , ,voice,"))
	require.Empty(t, ParseTags("  , ,"))
}
