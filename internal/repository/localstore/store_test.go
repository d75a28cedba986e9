package localstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/inkandpages/blog-service/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	require.NoError(t, err)
	return store
}

func testPost(id, title string) model.Post {
	now := time.Now().UnixMilli()
	return model.Post{
		ID:          id,
		Title:       title,
		Content:     "Some content for " + title,
		Excerpt:     "An excerpt",
		Tags:        []string{"test"},
		ReadingTime: 1,
		Published:   true,
		PublishedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestCreateReadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	created, err := store.Create(testPost("1700000000000-first", "First"))
	require.NoError(t, err)

	found, err := store.FindByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, *created, *found)
}

func TestCreateCollisionLastWriteWins(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Create(testPost("1700000000000-dup", "Original"))
	require.NoError(t, err)
	_, err = store.Create(testPost("1700000000000-dup", "Replacement"))
	require.NoError(t, err)

	all, err := store.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "Replacement", all[0].Title)
}

func TestUpdate(t *testing.T) {
	store := newTestStore(t)

	post := testPost("1700000000000-first", "First")
	_, err := store.Create(post)
	require.NoError(t, err)

	post.Title = "Edited"
	updated, err := store.Update(post)
	require.NoError(t, err)
	require.Equal(t, "Edited", updated.Title)

	found, err := store.FindByID(post.ID)
	require.NoError(t, err)
	require.Equal(t, "Edited", found.Title)

	_, err = store.Update(testPost("missing", "Nope"))
	require.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeleteThenReadReturnsNil(t *testing.T) {
	store := newTestStore(t)

	post := testPost("1700000000000-first", "First")
	_, err := store.Create(post)
	require.NoError(t, err)

	require.NoError(t, store.Delete(post.ID))

	found, err := store.FindByID(post.ID)
	require.NoError(t, err)
	require.Nil(t, found)

	require.ErrorIs(t, store.Delete(post.ID), ErrPostNotFound)
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	_, err = store.Create(testPost("1700000000000-first", "First"))
	require.NoError(t, err)

	reopened, err := New(dir)
	require.NoError(t, err)
	all, err := reopened.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestDraftSlots(t *testing.T) {
	store := newTestStore(t)

	draft := model.Draft{
		Title:   "Work in progress",
		Content: "half-written thought",
		Tags:    "writing, drafts",
		SavedAt: time.Now().UnixMilli(),
	}
	require.NoError(t, store.SaveDraft("1700000000000-wip", draft))

	loaded, err := store.Draft("1700000000000-wip")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, draft, *loaded)

	require.NoError(t, store.ClearDraft("1700000000000-wip"))
	loaded, err = store.Draft("1700000000000-wip")
	require.NoError(t, err)
	require.Nil(t, loaded)

	// clearing twice is fine
	require.NoError(t, store.ClearDraft("1700000000000-wip"))
}
