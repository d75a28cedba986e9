package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inkandpages/blog-service/internal/dto"
	"github.com/inkandpages/blog-service/internal/model"
	"github.com/inkandpages/blog-service/internal/repository"
	"github.com/inkandpages/blog-service/internal/repository/localstore"
	"github.com/inkandpages/blog-service/internal/repository/mongodb"
	"github.com/inkandpages/blog-service/internal/repository/redisrepo"
	"github.com/inkandpages/blog-service/internal/repository/staticsource"
)

// fakeHostedSource mimics the hosted document store in memory, including its
// error-swallowing read behavior. With failing=true every read degrades to
// an empty result and every write errors.
type fakeHostedSource struct {
	posts map[string]*model.Post
	failing bool
	seq int
}

func newFakeHostedSource() *fakeHostedSource {
	return &fakeHostedSource{posts: make(map[string]*model.Post)}
}

func (f *fakeHostedSource) Create(_ context.Context, post model.Post) (*model.Post, error) {
	if f.failing {
		return nil, errors.New("hosted store unreachable")
	}
	f.seq++
	now := time.Now().UnixMilli() + int64(f.seq)
	post.ID = fmt.Sprintf("hosted-%d", f.seq)
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Published && post.PublishedAt == 0 {
		post.PublishedAt = now
	}
	if !post.Published {
		post.PublishedAt = 0
	}
	stored := post
	f.posts[post.ID] = &stored
	return &post, nil
}

func (f *fakeHostedSource) Update(_ context.Context, id string, update model.PostUpdate) (*model.Post, error) {
	if f.failing {
		return nil, errors.New("hosted store unreachable")
	}
	post, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	if update.Title != nil {
		post.Title = *update.Title
	}
	if update.Content != nil {
		post.Content = *update.Content
	}
	if update.Excerpt != nil {
		post.Excerpt = *update.Excerpt
	}
	if update.Tags != nil {
		post.Tags = *update.Tags
	}
	if update.ReadingTime != nil {
		post.ReadingTime = *update.ReadingTime
	}
	if update.CoverImage != nil {
		post.CoverImage = *update.CoverImage
	}
	if update.Published != nil {
		post.Published = *update.Published
		if *update.Published {
			if update.PublishedAt != nil {
				post.PublishedAt = *update.PublishedAt
			} else {
				post.PublishedAt = time.Now().UnixMilli()
			}
		} else {
			post.PublishedAt = 0
		}
	}
	post.UpdatedAt = time.Now().UnixMilli()
	result := *post
	return &result, nil
}

func (f *fakeHostedSource) Delete(_ context.Context, id string) error {
	if f.failing {
		return errors.New("hosted store unreachable")
	}
	delete(f.posts, id)
	return nil
}

func (f *fakeHostedSource) ClearAll(_ context.Context) (int, error) {
	if f.failing {
		return 0, errors.New("hosted store unreachable")
	}
	deleted := len(f.posts)
	f.posts = make(map[string]*model.Post)
	return deleted, nil
}

func (f *fakeHostedSource) FindByID(_ context.Context, id string) (*model.Post, error) {
	if f.failing {
		return nil, nil
	}
	post, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	result := *post
	return &result, nil
}

func (f *fakeHostedSource) All(_ context.Context) ([]*model.Post, bool) {
	if f.failing {
		return nil, false
	}
	out := f.list(func(*model.Post) bool { return true })
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, true
}

func (f *fakeHostedSource) Published(_ context.Context) ([]*model.Post, bool) {
	if f.failing {
		return nil, false
	}
	out := f.list(func(p *model.Post) bool { return p.Published })
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt > out[j].PublishedAt })
	return out, true
}

func (f *fakeHostedSource) FindByTag(_ context.Context, tag string) ([]*model.Post, bool) {
	if f.failing {
		return nil, false
	}
	return f.list(func(p *model.Post) bool {
		if !p.Published {
			return false
		}
		for _, t := range p.Tags {
			if t == tag {
				return true
			}
		}
		return false
	}), true
}

func (f *fakeHostedSource) list(keep func(*model.Post) bool) []*model.Post {
	var out []*model.Post
	for _, p := range f.posts {
		if keep(p) {
			result := *p
			out = append(out, &result)
		}
	}
	return out
}

// fakeCache always misses so every read goes through to the sources. It
// records what gets written and deleted.
type fakeCache struct {
	setKeys []string
	delKeys []string
	scanKeys []string
}

func (f *fakeCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (f *fakeCache) SetJSON(_ context.Context, key string, _ interface{}, _ time.Duration) error {
	f.setKeys = append(f.setKeys, key)
	return nil
}
func (f *fakeCache) Get(context.Context, string) *redis.StringCmd {
	return redis.NewStringResult("", redis.Nil)
}
func (f *fakeCache) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.delKeys = append(f.delKeys, keys...)
	return redis.NewIntResult(int64(len(keys)), nil)
}
func (f *fakeCache) Scan(context.Context, uint64, string, int64) *redis.ScanCmd {
	return redis.NewScanCmdResult(f.scanKeys, 0, nil)
}

func newTestService(t *testing.T, hosted *fakeHostedSource) (Post, *localstore.Store, *fakeCache) {
	t.Helper()
	local, err := localstore.New(t.TempDir())
	require.NoError(t, err)

	cache := &fakeCache{}
	repo := &repository.Repository{
		Mongo: &mongodb.MongoRepository{Post: hosted},
		Local: local,
		Static: staticsource.New(),
		Redis: &redisrepo.RedisRepository{Default: cache},
	}
	return newPostService(zap.NewNop(), repo), local, cache
}

func localPost(id string, published bool, publishedAt int64) model.Post {
	return model.Post{
		ID: id,
		Title: "Local " + id,
		Content: "local content",
		Excerpt: "local excerpt",
		Tags: []string{"local"},
		ReadingTime: 1,
		Published: published,
		PublishedAt: publishedAt,
		CreatedAt: publishedAt,
		UpdatedAt: publishedAt,
	}
}

func TestListFallsBackWhenHostedUnreachable(t *testing.T) {
	hosted := newFakeHostedSource()
	hosted.failing = true
	svc, local, _ := newTestService(t, hosted)
	ctx := context.Background()

	_, err := local.Create(localPost("1800000000000-local", true, 1800000000000))
	require.NoError(t, err)

	posts := svc.GetPublishedPosts(ctx)
	staticCount := len(staticsource.New().Published())
	require.Len(t, posts, staticCount+1)
	require.Equal(t, "1800000000000-local", posts[0].ID, "newest entry first")
}

func TestUnionDedupesHostedWins(t *testing.T) {
	hosted := newFakeHostedSource()
	svc, _, _ := newTestService(t, hosted)
	ctx := context.Background()

	staticID := staticsource.New().Published()[0].ID
	shadow := localPost(staticID, true, 1900000000000)
	shadow.Title = "Hosted copy"
	hosted.posts[staticID] = &shadow

	posts := svc.GetPublishedPosts(ctx)
	count := 0
	for _, p := range posts {
		if p.ID == staticID {
			count++
			require.Equal(t, "Hosted copy", p.Title)
		}
	}
	require.Equal(t, 1, count, "union must contain exactly one entry per id")
}

func TestPublishedNeverIncludesDrafts(t *testing.T) {
	hosted := newFakeHostedSource()
	svc, local, _ := newTestService(t, hosted)
	ctx := context.Background()

	_, err := local.Create(localPost("1800000000000-draft", false, 0))
	require.NoError(t, err)
	_, err = hosted.Create(ctx, model.Post{Title: "Hosted draft", Content: "c", Published: false})
	require.NoError(t, err)

	for _, p := range svc.GetPublishedPosts(ctx) {
		require.True(t, p.Published)
	}

	all := svc.GetAllPosts(ctx)
	ids := make(map[string]bool)
	for _, p := range all {
		ids[p.ID] = true
	}
	require.True(t, ids["1800000000000-draft"], "drafts belong in the full listing")
}

func TestSyncAndAsyncLookupPaths(t *testing.T) {
	hosted := newFakeHostedSource()
	svc, local, _ := newTestService(t, hosted)
	ctx := context.Background()

	created, err := hosted.Create(ctx, model.Post{Title: "Hosted only", Content: "c", Published: true})
	require.NoError(t, err)

	require.Nil(t, svc.GetPostByIDSync(created.ID), "sync path never reaches the hosted source")
	found := svc.GetPostByID(ctx, created.ID)
	require.NotNil(t, found)
	require.Equal(t, created.Title, found.Title)

	_, err = local.Create(localPost("1800000000000-local", true, 1800000000000))
	require.NoError(t, err)
	require.NotNil(t, svc.GetPostByIDSync("1800000000000-local"))

	require.Nil(t, svc.GetPostByID(ctx, "missing"), "absence is a nil result, not an error")
	require.Nil(t, svc.GetPostByID(ctx, "  "))
}

func TestHostedRoundTripAllFields(t *testing.T) {
	hosted := newFakeHostedSource()
	svc, _, _ := newTestService(t, hosted)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CreatePostRequest{
		Title: "Round Trip",
		Content: "# Round Trip\n\nSome **content** here with enough words.",
		Tags: "one, two",
		Published: true,
		CoverImage: "https://cdn.example.com/img.jpg",
	})
	require.NoError(t, err)

	found := svc.GetPostByID(ctx, created.ID)
	require.NotNil(t, found)
	require.Equal(t, *created, *found)
	require.GreaterOrEqual(t, found.ReadingTime, 1)
	require.NotEmpty(t, found.Excerpt)
	require.NotContains(t, found.Excerpt, "#")
	require.Equal(t, []string{"one", "two"}, found.Tags)
}

func TestCreateValidation(t *testing.T) {
	hosted := newFakeHostedSource()
	svc, _, _ := newTestService(t, hosted)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreatePostRequest{Title: "  ", Content: "body"})
	require.ErrorIs(t, err, ErrTitleAndContentRequired)

	_, err = svc.Create(ctx, dto.CreatePostRequest{Title: "Title", Content: "<p>  </p>"})
	require.ErrorIs(t, err, ErrTitleAndContentRequired)
}

func TestDraftThenPublishScenario(t *testing.T) {
	hosted := newFakeHostedSource()
	svc, _, _ := newTestService(t, hosted)
	ctx := context.Background()

	draft, err := svc.Create(ctx, dto.CreatePostRequest{
		Title: "Unfinished thought",
		Content: "Still working on this one.",
		Published: false,
	})
	require.NoError(t, err)
	require.Zero(t, draft.PublishedAt)

	for _, p := range svc.GetPublishedPosts(ctx) {
		require.NotEqual(t, draft.ID, p.ID)
	}

	published := true
	updated, err := svc.Update(ctx, draft.ID, dto.EditPostRequest{Published: &published})
	require.NoError(t, err)
	require.True(t, updated.Published)
	require.Positive(t, updated.PublishedAt)

	posts := svc.GetPublishedPosts(ctx)
	require.NotEmpty(t, posts)
	require.Equal(t, draft.ID, posts[0].ID, "freshly published post sorts to the top")
}

func TestUpdateNotFoundAndWriteErrorsPropagate(t *testing.T) {
	hosted := newFakeHostedSource()
	svc, _, _ := newTestService(t, hosted)
	ctx := context.Background()

	title := "New title"
	_, err := svc.Update(ctx, "missing", dto.EditPostRequest{Title: &title})
	require.ErrorIs(t, err, ErrPostNotFound)

	hosted.failing = true
	_, err = svc.Create(ctx, dto.CreatePostRequest{Title: "T", Content: "Some body text"})
	require.ErrorIs(t, err, ErrInternal)
	require.ErrorIs(t, svc.Delete(ctx, "any"), ErrInternal)
}

func TestSearchPosts(t *testing.T) {
	hosted := newFakeHostedSource()
	svc, _, _ := newTestService(t, hosted)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreatePostRequest{
		Title: "Gardening for Writers",
		Content: "On compost and commas.",
		Tags: "gardening",
		Published: true,
	})
	require.NoError(t, err)

	results := svc.SearchPosts(ctx, "gardening")
	require.Len(t, results, 1)

	require.NotEmpty(t, svc.SearchPosts(ctx, "storytelling"), "static posts are searchable")
	require.Empty(t, svc.SearchPosts(ctx, "zzz-no-match"))
	require.Empty(t, svc.SearchPosts(ctx, "  "))
}

func TestGetPostsByTag(t *testing.T) {
	hosted := newFakeHostedSource()
	svc, _, _ := newTestService(t, hosted)
	ctx := context.Background()

	posts := svc.GetPostsByTag(ctx, "writing")
	require.NotEmpty(t, posts)
	for _, p := range posts {
		require.True(t, p.Published)
		found := false
		for _, tag := range p.Tags {
			if tag == "writing" {
				found = true
			}
		}
		require.True(t, found)
	}
}

func TestMigrateLocalPosts(t *testing.T) {
	hosted := newFakeHostedSource()
	svc, local, _ := newTestService(t, hosted)
	ctx := context.Background()

	_, err := local.Create(localPost("1800000000000-a", true, 1800000000000))
	require.NoError(t, err)
	_, err = local.Create(localPost("1800000000001-b", false, 0))
	require.NoError(t, err)

	migrated, err := svc.MigrateLocalPosts(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, migrated)
	require.Len(t, hosted.posts, 2)

	remaining, err := local.All()
	require.NoError(t, err)
	require.Empty(t, remaining, "local slot is cleared after a full migration")
}

func TestDegradedListingIsNotCached(t *testing.T) {
	hosted := newFakeHostedSource()
	svc, _, cache := newTestService(t, hosted)
	ctx := context.Background()

	hosted.failing = true
	svc.GetPublishedPosts(ctx)
	svc.GetAllPosts(ctx)
	svc.GetPostsByTag(ctx, "writing")
	require.Empty(t, cache.setKeys, "a static+local fallback result must not occupy the cache")

	hosted.failing = false
	svc.GetPublishedPosts(ctx)
	require.Contains(t, cache.setKeys, redisrepo.PUBLISHED_POSTS_KEY)
}

func TestClearAllPosts(t *testing.T) {
	hosted := newFakeHostedSource()
	svc, _, _ := newTestService(t, hosted)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreatePostRequest{Title: "One", Content: "Body one", Published: true})
	require.NoError(t, err)
	_, err = svc.Create(ctx, dto.CreatePostRequest{Title: "Two", Content: "Body two"})
	require.NoError(t, err)

	deleted, err := svc.ClearAllPosts(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, deleted)
	require.Empty(t, hosted.posts)

	posts := svc.GetPublishedPosts(ctx)
	require.Len(t, posts, len(staticsource.New().Published()), "embedded posts survive the wipe")

	hosted.failing = true
	_, err = svc.ClearAllPosts(ctx)
	require.ErrorIs(t, err, ErrInternal)
}

func TestWriteInvalidatesScannedCacheKeys(t *testing.T) {
	hosted := newFakeHostedSource()
	svc, _, cache := newTestService(t, hosted)
	ctx := context.Background()

	cache.scanKeys = []string{"posts:all", "posts:tag:writing"}

	created, err := svc.Create(ctx, dto.CreatePostRequest{Title: "T", Content: "Some body", Published: true})
	require.NoError(t, err)

	require.Contains(t, cache.delKeys, "posts:all")
	require.Contains(t, cache.delKeys, "posts:tag:writing")
	require.Contains(t, cache.delKeys, redisrepo.PostKey(created.ID))
}

func TestDraftSlotLifecycle(t *testing.T) {
	hosted := newFakeHostedSource()
	svc, _, _ := newTestService(t, hosted)

	require.NoError(t, svc.SaveDraft("some-post", dto.SaveDraftRequest{Title: "wip", Content: "body", Tags: "a, b"}))

	draft, err := svc.GetDraft("some-post")
	require.NoError(t, err)
	require.NotNil(t, draft)
	require.Equal(t, "wip", draft.Title)
	require.Positive(t, draft.SavedAt)

	require.NoError(t, svc.ClearDraft("some-post"))
	draft, err = svc.GetDraft("some-post")
	require.NoError(t, err)
	require.Nil(t, draft)
}
