package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/inkandpages/blog-service/internal/model"
)

var draftKeyRe = regexp.MustCompile(`[^\w-]`)

func (s *Store) draftPath(postID string) string {
	key := draftKeyRe.ReplaceAllString(postID, "_")
	return filepath.Join(s.dir, fmt.Sprintf("draft-%s.json", key))
}

// SaveDraft writes the auto-saved edit session snapshot for a post,
// replacing any previous snapshot.
func (s *Store) SaveDraft(postID string, draft model.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.draftPath(postID) + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.draftPath(postID))
}

// Draft loads the auto-saved snapshot for a post, or nil when none exists.
func (s *Store) Draft(postID string) (*model.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, err := os.ReadFile(s.draftPath(postID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var draft model.Draft
	if err := json.Unmarshal(b, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// ClearDraft removes the auto-saved snapshot for a post. Clearing a missing
// draft is not an error.
func (s *Store) ClearDraft(postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.draftPath(postID))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
