// Package roadmap locates roadmaps below a roadmaps directory.
//
// Each roadmap is a directory named by its id holding the definition
// document (<id>.json, or a bare <id> file) and a content/ tree.
package roadmap

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/samber/lo"

	"github.com/agentic-research/roadmap-content/internal/topic"
)

// ErrRoadmapRequired is returned when no roadmap id was given.
var ErrRoadmapRequired = errors.New("roadmapId is required")

// ContentDirName is the directory holding a roadmap's topic files.
const ContentDirName = "content"

// InvalidRoadmapError is returned for an id that names no roadmap.
type InvalidRoadmapError struct {
	ID      string
	Allowed []string
}

func (e *InvalidRoadmapError) Error() string {
	return fmt.Sprintf("Invalid roadmap key %s\nAllowed keys are %s", e.ID, strings.Join(e.Allowed, ", "))
}

// Roadmap is a resolved roadmap.
type Roadmap struct {
	ID string
	// Title is the id in words, e.g. "computer science".
	Title          string
	DefinitionPath string
	ContentDir     string
}

// Workspace is a roadmaps directory on a filesystem.
type Workspace struct {
	FS   billy.Filesystem
	Root string
}

// NewWorkspace returns the Workspace rooted at dir on fsys.
func NewWorkspace(fsys billy.Filesystem, dir string) *Workspace {
	return &Workspace{FS: fsys, Root: dir}
}

// IDs lists every roadmap id, sorted.
func (w *Workspace) IDs() ([]string, error) {
	entries, err := w.FS.ReadDir(w.Root)
	if err != nil {
		return nil, fmt.Errorf("list roadmaps in %s: %w", w.Root, err)
	}
	ids := lo.FilterMap(entries, func(e os.FileInfo, _ int) (string, bool) {
		return e.Name(), e.IsDir() && !strings.HasPrefix(e.Name(), ".")
	})
	sort.Strings(ids)
	return ids, nil
}

// Resolve validates id and returns its paths.
func (w *Workspace) Resolve(id string) (*Roadmap, error) {
	if id == "" {
		return nil, ErrRoadmapRequired
	}
	ids, err := w.IDs()
	if err != nil {
		return nil, err
	}
	if !lo.Contains(ids, id) {
		return nil, &InvalidRoadmapError{ID: id, Allowed: ids}
	}

	rm := &Roadmap{
		ID:         id,
		Title:      topic.Display(id),
		ContentDir: w.FS.Join(w.Root, id, ContentDirName),
	}
	rm.DefinitionPath, err = w.definitionPath(id)
	if err != nil {
		return nil, err
	}
	return rm, nil
}

// definitionPath prefers <id>/<id>.json and falls back to <id>/<id>.
func (w *Workspace) definitionPath(id string) (string, error) {
	for _, name := range []string{id + ".json", id} {
		p := w.FS.Join(w.Root, id, name)
		if info, err := w.FS.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("roadmap %s: no definition file %s.json", id, w.FS.Join(w.Root, id, id))
}
