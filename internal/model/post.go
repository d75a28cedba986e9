package model

// Post is the single content entity of the blog. Every timestamp is epoch
// milliseconds; heterogeneous representations are normalized at the source
// adapters and never cross into the service layer. A PublishedAt of 0 means
// the post has never been published.
type Post struct {
	ID          string   `json:"id" bson:"_id"`
	Title       string   `json:"title" bson:"title"`
	Excerpt     string   `json:"excerpt" bson:"excerpt"`
	Content     string   `json:"content" bson:"content"`
	Tags        []string `json:"tags" bson:"tags"`
	ReadingTime int      `json:"reading_time" bson:"reading_time"`
	Published   bool     `json:"published" bson:"published"`
	PublishedAt int64    `json:"published_at" bson:"published_at,omitempty"`
	CreatedAt   int64    `json:"created_at" bson:"created_at"`
	UpdatedAt   int64    `json:"updated_at" bson:"updated_at"`
	CoverImage  string   `json:"cover_image,omitempty" bson:"cover_image,omitempty"`
}

// SortKey is the recency key used when merging sources: publish time for
// published posts, creation time for drafts.
func (p *Post) SortKey() int64 {
	if p.PublishedAt > 0 {
		return p.PublishedAt
	}
	return p.CreatedAt
}

// PostUpdate carries a partial field merge for an edit. Nil fields are left
// untouched by the store.
type PostUpdate struct {
	Title       *string   `json:"title"`
	Excerpt     *string   `json:"excerpt"`
	Content     *string   `json:"content"`
	Tags        *[]string `json:"tags"`
	ReadingTime *int      `json:"reading_time"`
	Published   *bool     `json:"published"`
	PublishedAt *int64    `json:"published_at"`
	CoverImage  *string   `json:"cover_image"`
}

// Draft is an auto-saved edit-session snapshot, stored locally per post and
// independent of the hosted store. Tags are kept raw as the user typed them.
type Draft struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Excerpt    string `json:"excerpt"`
	Tags       string `json:"tags"`
	Published  bool   `json:"published"`
	CoverImage string `json:"cover_image,omitempty"`
	SavedAt    int64  `json:"saved_at"`
}
