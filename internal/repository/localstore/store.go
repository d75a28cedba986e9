// Package localstore persists posts in a single local JSON slot holding the
// full serialized array. Every mutation reads the array, changes it in memory
// and rewrites it wholesale. It is the writable fallback store, independent
// of and never synchronized with the hosted store.
package localstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/inkandpages/blog-service/internal/model"
)

const postsFileName = "posts.json"

var ErrPostNotFound = errors.New("post not found in local store")

type Store struct {
	mu  sync.RWMutex
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) postsPath() string {
	return filepath.Join(s.dir, postsFileName)
}

func (s *Store) readLocked() ([]model.Post, error) {
	b, err := os.ReadFile(s.postsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var posts []model.Post
	if err := json.Unmarshal(b, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *Store) writeLocked(posts []model.Post) error {
	if posts == nil {
		posts = []model.Post{}
	}
	b, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.postsPath() + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.postsPath())
}

// All returns every locally stored post.
func (s *Store) All() ([]*model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts, err := s.readLocked()
	if err != nil {
		return nil, err
	}
	out := make([]*model.Post, 0, len(posts))
	for i := range posts {
		p := posts[i]
		out = append(out, &p)
	}
	return out, nil
}

// FindByID returns the stored post with the given id, or nil when absent.
func (s *Store) FindByID(id string) (*model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts, err := s.readLocked()
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].ID == id {
			p := posts[i]
			return &p, nil
		}
	}
	return nil, nil
}

// Create prepends the post to the stored array. An existing post with the
// same id is replaced: last write wins on a local id collision.
func (s *Store) Create(post model.Post) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.readLocked()
	if err != nil {
		return nil, err
	}
	kept := make([]model.Post, 0, len(posts)+1)
	kept = append(kept, post)
	for i := range posts {
		if posts[i].ID != post.ID {
			kept = append(kept, posts[i])
		}
	}
	if err := s.writeLocked(kept); err != nil {
		return nil, err
	}
	return &post, nil
}

// Update replaces the stored post with the same id.
func (s *Store) Update(post model.Post) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.readLocked()
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].ID == post.ID {
			posts[i] = post
			if err := s.writeLocked(posts); err != nil {
				return nil, err
			}
			return &post, nil
		}
	}
	return nil, ErrPostNotFound
}

// Delete removes the stored post with the given id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.readLocked()
	if err != nil {
		return err
	}
	kept := posts[:0]
	found := false
	for i := range posts {
		if posts[i].ID == id {
			found = true
			continue
		}
		kept = append(kept, posts[i])
	}
	if !found {
		return ErrPostNotFound
	}
	return s.writeLocked(kept)
}

// Clear empties the stored array. Used by the one-shot migration once every
// local post has been copied into the hosted store.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(nil)
}
