package blog

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"path"
	"sort"
	"strings"

	"github.com/Zachkp/folio/content"
)

// Store serves the posts found as *.md files in dir. Posts are read once
// and kept until Invalidate.
type Store struct {
	fsys  fs.FS
	dir   string
	cache *content.Cache[Post]
}

func NewStore(fsys fs.FS, dir string) *Store {
	s := &Store{fsys: fsys, dir: dir}
	s.cache = content.NewCache("blog posts", s.load)
	return s
}

func (s *Store) load(ctx context.Context) ([]Post, error) {
	entries, err := fs.ReadDir(s.fsys, s.dir)
	if err != nil {
		return nil, err
	}
	var posts []Post
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || path.Ext(e.Name()) != ".md" {
			continue
		}
		data, err := fs.ReadFile(s.fsys, path.Join(s.dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		post, err := Parse(strings.TrimSuffix(e.Name(), ".md"), data)
		if err != nil {
			log.Printf("Skipping blog post: %v", err)
			continue
		}
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		a, aok := content.ParseDate(posts[i].Date)
		b, bok := content.ParseDate(posts[j].Date)
		if aok != bok {
			return aok
		}
		if !a.Equal(b) {
			return a.After(b)
		}
		return posts[i].ID < posts[j].ID
	})
	return posts, nil
}

// List returns all posts, newest first.
func (s *Store) List(ctx context.Context) []Post {
	return s.cache.Get(ctx)
}

func (s *Store) Get(ctx context.Context, id string) (Post, error) {
	for _, p := range s.List(ctx) {
		if p.ID == id {
			return p, nil
		}
	}
	return Post{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (s *Store) Featured(ctx context.Context) []Post {
	return content.Filter(s.List(ctx), func(p Post) bool { return p.Featured })
}

func (s *Store) ByTag(ctx context.Context, tag string) []Post {
	return content.Filter(s.List(ctx), func(p Post) bool { return p.HasTag(tag) })
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Tags counts posts per tag, most used first. Tags differing only in case
// are merged under the first spelling seen.
func (s *Store) Tags(ctx context.Context) []TagCount {
	var flat []string
	for _, p := range s.List(ctx) {
		flat = append(flat, p.Tags...)
	}
	spelling := make(map[string]string)
	groups := content.GroupByKey(flat, func(t string) string {
		k := strings.ToLower(t)
		if _, ok := spelling[k]; !ok {
			spelling[k] = t
		}
		return k
	})
	out := make([]TagCount, 0, len(groups))
	for _, g := range groups {
		out = append(out, TagCount{Tag: spelling[g.Key], Count: len(g.Items)})
	}
	return out
}

// Archive groups posts by publication month, newest first.
func (s *Store) Archive(ctx context.Context) []content.DateGroup[Post] {
	return content.GroupByDate(s.List(ctx), func(p Post) string { return p.Date })
}

func (s *Store) Invalidate() {
	s.cache.Invalidate()
}
