package dto

type CreatePostRequest struct {
	Title string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	Excerpt string `json:"excerpt"`
	Tags string `json:"tags"`
	Published bool `json:"published"`
	CoverImage string `json:"cover_image"`
}

type EditPostRequest struct {
	Title *string `json:"title"`
	Content *string `json:"content"`
	Excerpt *string `json:"excerpt"`
	Tags *string `json:"tags"`
	Published *bool `json:"published"`
	CoverImage *string `json:"cover_image"`
}

type SaveDraftRequest struct {
	Title string `json:"title"`
	Content string `json:"content"`
	Excerpt string `json:"excerpt"`
	Tags string `json:"tags"`
	Published bool `json:"published"`
	CoverImage string `json:"cover_image"`
}
