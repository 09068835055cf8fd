package photography

import (
	"context"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/Zachkp/folio/content"
)

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true, ".avif": true,
}

// Store lists the photos under root in fsys. The list is loaded on first use
// and kept until Invalidate.
type Store struct {
	fsys      fs.FS
	root      string
	urlPrefix string
	cache     *content.Cache[Photo]
}

func NewStore(fsys fs.FS, root, urlPrefix string) *Store {
	s := &Store{fsys: fsys, root: root, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}
	s.cache = content.NewCache("photos", s.load)
	return s
}

// List returns every photo, newest first.
func (s *Store) List(ctx context.Context) []Photo {
	return s.cache.Get(ctx)
}

func (s *Store) Invalidate() {
	s.cache.Invalidate()
}

func (s *Store) load(ctx context.Context) ([]Photo, error) {
	var photos []Photo
	err := fs.WalkDir(s.fsys, s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !imageExts[strings.ToLower(path.Ext(p))] {
			return nil
		}
		rel := p
		if s.root != "." {
			rel = strings.TrimPrefix(strings.TrimPrefix(p, s.root), "/")
		}
		photos = append(photos, Extract(rel, s.urlPrefix+"/"+rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	SortNewestFirst(photos)
	return photos, nil
}

// SortNewestFirst orders photos by date descending; undated photos go last.
func SortNewestFirst(photos []Photo) {
	sort.SliceStable(photos, func(i, j int) bool {
		a, aok := content.ParseDate(photos[i].Date)
		b, bok := content.ParseDate(photos[j].Date)
		if aok != bok {
			return aok
		}
		return a.After(b)
	})
}
