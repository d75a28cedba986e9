package dto

import (
	"github.com/inkandpages/blog-service/internal/model"
	"github.com/inkandpages/blog-service/pkg/utils"
)

// PostMetadata is the listing shape: everything but the full content.
type PostMetadata struct {
	ID string `json:"id"`
	Title string `json:"title"`
	Excerpt string `json:"excerpt"`
	Tags []string `json:"tags"`
	ReadingTime int `json:"reading_time"`
	Published bool `json:"published"`
	PublishedAt int64 `json:"published_at"`
	PublishedDate string `json:"published_date"`
	PublishedAgo string `json:"published_ago"`
	CoverImage string `json:"cover_image,omitempty"`
}

func NewPostMetadata(p *model.Post) PostMetadata {
	return PostMetadata{
		ID: p.ID,
		Title: p.Title,
		Excerpt: p.Excerpt,
		Tags: p.Tags,
		ReadingTime: p.ReadingTime,
		Published: p.Published,
		PublishedAt: p.PublishedAt,
		PublishedDate: utils.FormatDate(p.PublishedAt),
		PublishedAgo: utils.FormatRelativeDate(p.PublishedAt),
		CoverImage: p.CoverImage,
	}
}

func NewPostMetadataList(posts []*model.Post) []PostMetadata {
	out := make([]PostMetadata, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostMetadata(p))
	}
	return out
}

type GetPost struct {
	Post model.Post `json:"post"`
	PublishedDate string `json:"published_date"`
	PublishedAgo string `json:"published_ago"`
}

func NewGetPost(p *model.Post) GetPost {
	return GetPost{
		Post: *p,
		PublishedDate: utils.FormatDate(p.PublishedAt),
		PublishedAgo: utils.FormatRelativeDate(p.PublishedAt),
	}
}

type LoginResponse struct {
	Token string `json:"token"`
}

type UploadImageResponse struct {
	URL string `json:"url"`
}

type MigrateResponse struct {
	Migrated int `json:"migrated"`
}

type ClearPostsResponse struct {
	Deleted int `json:"deleted"`
}
