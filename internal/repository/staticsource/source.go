// Package staticsource serves the fixed, build-embedded post list used when
// no dynamic source is reachable. It is read-only and cannot fail.
package staticsource

import (
	_ "embed"
	"encoding/json"
	"sort"

	"github.com/inkandpages/blog-service/internal/model"
)

//go:embed posts.json
var postsJSON []byte

type Source struct {
	posts []model.Post
}

func New() *Source {
	var posts []model.Post
	if err := json.Unmarshal(postsJSON, &posts); err != nil {
		// The data is embedded at build time; a parse failure is a build
		// defect, not a runtime condition.
		panic("staticsource: invalid embedded posts.json: " + err.Error())
	}
	return &Source{posts: posts}
}

// All returns every embedded post.
func (s *Source) All() []*model.Post {
	out := make([]*model.Post, 0, len(s.posts))
	for i := range s.posts {
		p := s.posts[i]
		out = append(out, &p)
	}
	return out
}

// Published returns the published posts sorted by publish time, newest first.
func (s *Source) Published() []*model.Post {
	out := make([]*model.Post, 0, len(s.posts))
	for i := range s.posts {
		if !s.posts[i].Published {
			continue
		}
		p := s.posts[i]
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt > out[j].PublishedAt })
	return out
}

// FindByID returns the embedded post with the given id, or nil.
func (s *Source) FindByID(id string) *model.Post {
	for i := range s.posts {
		if s.posts[i].ID == id {
			p := s.posts[i]
			return &p
		}
	}
	return nil
}
