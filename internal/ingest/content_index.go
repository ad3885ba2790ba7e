package ingest

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-logr/logr"
	"github.com/samber/lo"

	"github.com/agentic-research/roadmap-content/internal/topic"
)

// ErrTopicCollision is returned in strict mode when two content files
// normalize to the same topic URL.
var ErrTopicCollision = errors.New("topic url collision")

// Collision records two files that normalized to the same topic URL.
// Kept is the file that stayed in the index.
type Collision struct {
	URL     topic.URL
	Kept    string
	Dropped string
}

// IndexOptions tune IndexContentTree.
type IndexOptions struct {
	// Strict fails the walk on the first URL collision instead of letting
	// the later file win.
	Strict bool
	Log    logr.Logger
}

// ContentIndex maps topic URLs to content file paths. It is built once and
// only read afterwards, so it is safe for concurrent lookups.
type ContentIndex struct {
	root       string
	files      map[topic.URL]string
	collisions []Collision
}

// IndexContentTree walks root on fsys and registers every regular file
// under its topic URL. Directory entries are visited in lexical order,
// so when two files collide the one visited last wins deterministically.
func IndexContentTree(fsys billy.Filesystem, root string, opts IndexOptions) (*ContentIndex, error) {
	info, err := fsys.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %s is not a directory", root)
	}

	idx := &ContentIndex{
		root:  root,
		files: make(map[topic.URL]string),
	}
	if err := idx.walk(fsys, root, opts); err != nil {
		return nil, err
	}
	return idx, nil
}

func (idx *ContentIndex) walk(fsys billy.Filesystem, dir string, opts IndexOptions) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		p := fsys.Join(dir, entry.Name())
		switch {
		case entry.IsDir():
			if err := idx.walk(fsys, p, opts); err != nil {
				return err
			}
		case entry.Mode().IsRegular():
			if err := idx.add(p, opts); err != nil {
				return err
			}
		}
	}
	return nil
}

func (idx *ContentIndex) add(p string, opts IndexOptions) error {
	url := topic.FromContentPath(idx.root, p)
	prev, exists := idx.files[url]
	if exists {
		if opts.Strict {
			return fmt.Errorf("%w: %s and %s both map to %q", ErrTopicCollision, prev, p, url)
		}
		idx.collisions = append(idx.collisions, Collision{URL: url, Kept: p, Dropped: prev})
		opts.Log.Info("topic url collision, keeping later file", "url", url, "kept", p, "dropped", prev)
	}
	idx.files[url] = p
	return nil
}

// Lookup returns the content file registered for url.
func (idx *ContentIndex) Lookup(url topic.URL) (string, bool) {
	p, ok := idx.files[url]
	return p, ok
}

// Len reports the number of indexed topics.
func (idx *ContentIndex) Len() int { return len(idx.files) }

// Root is the content directory the index was built from.
func (idx *ContentIndex) Root() string { return idx.root }

// URLs returns the indexed topic URLs in sorted order.
func (idx *ContentIndex) URLs() []topic.URL {
	urls := lo.Keys(idx.files)
	sort.Slice(urls, func(i, j int) bool { return urls[i] < urls[j] })
	return urls
}

// Collisions returns every collision resolved during the walk.
func (idx *ContentIndex) Collisions() []Collision { return idx.collisions }
