package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inkandpages/blog-service/internal/dto"
	"github.com/inkandpages/blog-service/internal/model"
	"github.com/inkandpages/blog-service/internal/repository"
	"github.com/inkandpages/blog-service/internal/repository/redisrepo"
)

type postService struct {
	logger *zap.Logger
	repo *repository.Repository
}

func newPostService(logger *zap.Logger, repo *repository.Repository) Post {
	return &postService{
		logger: logger,
		repo: repo,
	}
}

func cacheTTL() time.Duration {
	minutes := viper.GetInt("cache.ttl_minutes")
	if minutes <= 0 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}

// merge unions the hosted result with the static and local sources by id.
// The hosted copy wins on an id collision, then the static one, then the
// local one. The union is sorted by recency, newest first.
func (s *postService) merge(hosted []*model.Post) []*model.Post {
	seen := make(map[string]bool, len(hosted))
	union := make([]*model.Post, 0, len(hosted))

	for _, p := range hosted {
		if !seen[p.ID] {
			seen[p.ID] = true
			union = append(union, p)
		}
	}
	for _, p := range s.repo.Static.All() {
		if !seen[p.ID] {
			seen[p.ID] = true
			union = append(union, p)
		}
	}

	local, err := s.repo.Local.All()
	if err != nil {
		s.logger.Sugar().Errorf("failed to read posts from local store: %s", err.Error())
	}
	for _, p := range local {
		if !seen[p.ID] {
			seen[p.ID] = true
			union = append(union, p)
		}
	}

	sort.SliceStable(union, func(i, j int) bool { return union[i].SortKey() > union[j].SortKey() })
	return union
}

func (s *postService) GetAllPosts(ctx context.Context) []*model.Post {
	cached, err := redisrepo.GetMany[model.Post](s.repo.Redis.Default, ctx, redisrepo.ALL_POSTS_KEY)
	if err == nil {
		return cached
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get all posts from redis: %s", err.Error())
	}

	hosted, ok := s.repo.Mongo.Post.All(ctx)
	posts := s.merge(hosted)

	// A degraded union must not mask a healthy hosted result for a full TTL.
	if ok {
		if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.ALL_POSTS_KEY, posts, cacheTTL()); err != nil {
			s.logger.Sugar().Errorf("failed to set all posts in redis: %s", err.Error())
		}
	}

	return posts
}

func (s *postService) GetPublishedPosts(ctx context.Context) []*model.Post {
	cached, err := redisrepo.GetMany[model.Post](s.repo.Redis.Default, ctx, redisrepo.PUBLISHED_POSTS_KEY)
	if err == nil {
		return cached
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get published posts from redis: %s", err.Error())
	}

	// The published flag is checked after the union, on each entry's own
	// copy, so a fallback entry never leaks an unpublished revision.
	hosted, ok := s.repo.Mongo.Post.Published(ctx)
	union := s.merge(hosted)
	posts := make([]*model.Post, 0, len(union))
	for _, p := range union {
		if p.Published {
			posts = append(posts, p)
		}
	}

	if ok {
		if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.PUBLISHED_POSTS_KEY, posts, cacheTTL()); err != nil {
			s.logger.Sugar().Errorf("failed to set published posts in redis: %s", err.Error())
		}
	}

	return posts
}

func (s *postService) GetPostsByTag(ctx context.Context, tag string) []*model.Post {
	cached, err := redisrepo.GetMany[model.Post](s.repo.Redis.Default, ctx, redisrepo.TagPostsKey(tag))
	if err == nil {
		return cached
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get posts by tag(%s) from redis: %s", tag, err.Error())
	}

	hosted, ok := s.repo.Mongo.Post.FindByTag(ctx, tag)
	union := s.merge(hosted)
	posts := make([]*model.Post, 0, len(union))
	for _, p := range union {
		if p.Published && hasTag(p, tag) {
			posts = append(posts, p)
		}
	}

	if ok {
		if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.TagPostsKey(tag), posts, cacheTTL()); err != nil {
			s.logger.Sugar().Errorf("failed to set posts by tag(%s) in redis: %s", tag, err.Error())
		}
	}

	return posts
}

func hasTag(p *model.Post, tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// SearchPosts filters the published union by a case-insensitive match on
// title, content or tags. The hosted store has no full-text search, so the
// filtering happens here.
func (s *postService) SearchPosts(ctx context.Context, term string) []*model.Post {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	var matched []*model.Post
	for _, p := range s.GetPublishedPosts(ctx) {
		if strings.Contains(strings.ToLower(p.Title), term) ||
			strings.Contains(strings.ToLower(p.Content), term) ||
			tagMatches(p, term) {
			matched = append(matched, p)
		}
	}
	return matched
}

func tagMatches(p *model.Post, term string) bool {
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}

// GetPostByIDSync is the synchronous lookup path: static source first, then
// the local store, no network. It can disagree with GetPostByID when the
// hosted source holds a newer copy of the same id.
func (s *postService) GetPostByIDSync(id string) *model.Post {
	if post := s.repo.Static.FindByID(id); post != nil {
		return post
	}

	post, err := s.repo.Local.FindByID(id)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%s) in local store: %s", id, err.Error())
		return nil
	}
	return post
}

// GetPostByID is the asynchronous lookup path: the synchronous path first
// and, on a miss, the hosted source. Absence is a nil result, never an error.
func (s *postService) GetPostByID(ctx context.Context, id string) *model.Post {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}

	cached, err := redisrepo.Get[model.Post](s.repo.Redis.Default, ctx, redisrepo.PostKey(id))
	if err == nil {
		return cached
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get post(%s) from redis: %s", id, err.Error())
	}

	post := s.GetPostByIDSync(id)
	if post == nil {
		post, _ = s.repo.Mongo.Post.FindByID(ctx, id)
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.PostKey(id), post, cacheTTL()); err != nil {
		s.logger.Sugar().Errorf("failed to set post(%s) in redis: %s", id, err.Error())
	}

	return post
}

func (s *postService) Create(ctx context.Context, input dto.CreatePostRequest) (*model.Post, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" || model.StripMarkup(content) == "" {
		return nil, ErrTitleAndContentRequired
	}

	excerpt := strings.TrimSpace(input.Excerpt)
	if excerpt == "" {
		excerpt = model.GenerateExcerpt(content, model.ExcerptMaxLength)
	}

	post := model.Post{
		Title: title,
		Content: content,
		Excerpt: excerpt,
		Tags: model.ParseTags(input.Tags),
		ReadingTime: model.CalculateReadingTime(content),
		Published: input.Published,
		CoverImage: strings.TrimSpace(input.CoverImage),
	}

	created, err := s.repo.Mongo.Post.Create(ctx, post)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create post in mongo: %s", err.Error())
		return nil, ErrInternal
	}

	s.invalidateCache(ctx, created.ID)

	return created, nil
}

func (s *postService) Update(ctx context.Context, id string, input dto.EditPostRequest) (*model.Post, error) {
	update := model.PostUpdate{
		Published: input.Published,
		CoverImage: input.CoverImage,
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleAndContentRequired
		}
		update.Title = &title
	}

	if input.Content != nil {
		content := strings.TrimSpace(*input.Content)
		if model.StripMarkup(content) == "" {
			return nil, ErrTitleAndContentRequired
		}
		update.Content = &content

		readingTime := model.CalculateReadingTime(content)
		update.ReadingTime = &readingTime

		if input.Excerpt == nil || strings.TrimSpace(*input.Excerpt) == "" {
			excerpt := model.GenerateExcerpt(content, model.ExcerptMaxLength)
			update.Excerpt = &excerpt
		}
	}

	if input.Excerpt != nil && strings.TrimSpace(*input.Excerpt) != "" {
		excerpt := strings.TrimSpace(*input.Excerpt)
		update.Excerpt = &excerpt
	}

	if input.Tags != nil {
		tags := model.ParseTags(*input.Tags)
		update.Tags = &tags
	}

	updated, err := s.repo.Mongo.Post.Update(ctx, id, update)
	if err != nil {
		s.logger.Sugar().Errorf("failed to update post(%s) in mongo: %s", id, err.Error())
		return nil, ErrInternal
	}
	if updated == nil {
		return nil, ErrPostNotFound
	}

	s.invalidateCache(ctx, id)

	if err := s.repo.Local.ClearDraft(id); err != nil {
		s.logger.Sugar().Errorf("failed to clear draft for post(%s): %s", id, err.Error())
	}

	return updated, nil
}

func (s *postService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Mongo.Post.Delete(ctx, id); err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%s) from mongo: %s", id, err.Error())
		return ErrInternal
	}

	s.invalidateCache(ctx, id)

	if err := s.repo.Local.ClearDraft(id); err != nil {
		s.logger.Sugar().Errorf("failed to clear draft for post(%s): %s", id, err.Error())
	}

	return nil
}

// ClearAllPosts is the admin routine that wipes every hosted post. The
// static and local sources are untouched.
func (s *postService) ClearAllPosts(ctx context.Context) (int, error) {
	deleted, err := s.repo.Mongo.Post.ClearAll(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to clear hosted posts: %s", err.Error())
		return 0, ErrInternal
	}

	s.invalidateCache(ctx, "")

	return deleted, nil
}

func (s *postService) SaveDraft(id string, input dto.SaveDraftRequest) error {
	draft := model.Draft{
		Title: input.Title,
		Content: input.Content,
		Excerpt: input.Excerpt,
		Tags: input.Tags,
		Published: input.Published,
		CoverImage: input.CoverImage,
		SavedAt: time.Now().UnixMilli(),
	}
	return s.repo.Local.SaveDraft(id, draft)
}

func (s *postService) GetDraft(id string) (*model.Draft, error) {
	return s.repo.Local.Draft(id)
}

func (s *postService) ClearDraft(id string) error {
	return s.repo.Local.ClearDraft(id)
}

// MigrateLocalPosts is the one-shot copy routine: every locally stored post
// is recreated in the hosted store with a fresh hosted id. The local slot is
// cleared only when every post migrated.
func (s *postService) MigrateLocalPosts(ctx context.Context) (int, error) {
	local, err := s.repo.Local.All()
	if err != nil {
		s.logger.Sugar().Errorf("failed to read local posts for migration: %s", err.Error())
		return 0, ErrInternal
	}

	migrated := 0
	for _, post := range local {
		clone := *post
		clone.ID = ""
		if _, err := s.repo.Mongo.Post.Create(ctx, clone); err != nil {
			s.logger.Sugar().Errorf("failed to migrate local post(%s): %s", post.ID, err.Error())
			continue
		}
		migrated++
	}

	if migrated == len(local) && migrated > 0 {
		if err := s.repo.Local.Clear(); err != nil {
			s.logger.Sugar().Errorf("failed to clear local store after migration: %s", err.Error())
		}
	}

	s.invalidateCache(ctx, "")

	return migrated, nil
}

func (s *postService) invalidateCache(ctx context.Context, id string) {
	keys, err := redisrepo.ScanKeys(s.repo.Redis.Default, ctx, redisrepo.POSTS_KEY_PATTERN)
	if err != nil {
		s.logger.Sugar().Errorf("failed to scan post cache keys: %s", err.Error())
		keys = nil
	}
	if id != "" {
		keys = append(keys, redisrepo.PostKey(id))
	}
	if len(keys) == 0 {
		return
	}
	if err := s.repo.Redis.Default.Del(ctx, keys...).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate post cache: %s", err.Error())
	}
}
