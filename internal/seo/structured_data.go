package seo

import (
	"strconv"
	"time"

	"github.com/inkandpages/blog-service/internal/model"
)

// StructuredData builds the JSON-LD BlogPosting document for a post, derived
// from the entity at render time.
func StructuredData(baseURL string, siteName string, post *model.Post) map[string]interface{} {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type": "BlogPosting",
		"headline": post.Title,
		"description": post.Excerpt,
		"url": baseURL + "/posts/" + post.ID,
		"keywords": post.Tags,
		"timeRequired": timeRequired(post.ReadingTime),
		"publisher": map[string]interface{}{
			"@type": "Organization",
			"name": siteName,
		},
		"mainEntityOfPage": map[string]interface{}{
			"@type": "WebPage",
			"@id": baseURL + "/posts/" + post.ID,
		},
	}

	if post.PublishedAt > 0 {
		data["datePublished"] = time.UnixMilli(post.PublishedAt).UTC().Format(time.RFC3339)
	}
	if post.UpdatedAt > 0 {
		data["dateModified"] = time.UnixMilli(post.UpdatedAt).UTC().Format(time.RFC3339)
	}
	if post.CoverImage != "" {
		data["image"] = post.CoverImage
	}

	return data
}

func timeRequired(minutes int) string {
	if minutes < 1 {
		minutes = 1
	}
	return "PT" + strconv.Itoa(minutes) + "M"
}
