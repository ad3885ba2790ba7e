package app

import (
	"context"
	"errors"
	"path"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/roadmap-content/internal/backfill"
	"github.com/agentic-research/roadmap-content/internal/config"
	"github.com/agentic-research/roadmap-content/internal/generate"
	"github.com/agentic-research/roadmap-content/internal/ingest"
	"github.com/agentic-research/roadmap-content/internal/roadmap"
)

const definition = `{"mockup": {"controls": {"control": [
  {"typeID": "__group__", "properties": {"controlName": "100-internet"},
   "children": {"controls": {"control": [{"typeID": "Label", "properties": {"text": "Internet"}}]}}},
  {"typeID": "__group__", "properties": {"controlName": "100-internet:dns"},
   "children": {"controls": {"control": [{"typeID": "Label", "properties": {"text": "DNS"}}]}}},
  {"typeID": "__group__", "properties": {"controlName": "ext_link:roadmap.sh"},
   "children": {"controls": {"control": [{"typeID": "Label", "properties": {"text": "Elsewhere"}}]}}}
]}}}`

func fixture(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()
	fsys := memfs.New()
	all := map[string]string{"/roadmaps/frontend/frontend.json": definition}
	for k, v := range files {
		all[k] = v
	}
	for p, content := range all {
		require.NoError(t, fsys.MkdirAll(path.Dir(p), 0o755))
		require.NoError(t, util.WriteFile(fsys, p, []byte(content), 0o644))
	}
	return fsys
}

func cfg() config.Config {
	c := config.Default()
	c.RoadmapsDir = "/roadmaps"
	return c
}

func readFile(t *testing.T, fsys billy.Filesystem, p string) string {
	t.Helper()
	b, err := util.ReadFile(fsys, p)
	require.NoError(t, err)
	return string(b)
}

func TestApp_BackfillPlaceholders(t *testing.T) {
	fsys := fixture(t, map[string]string{
		"/roadmaps/frontend/content/100-internet/index.md":   "# Internet\n",
		"/roadmaps/frontend/content/100-internet/101-dns.md": "# DNS\nAlready written.",
	})

	a := New(fsys, cfg(), testr.New(t))
	require.True(t, a.PlaceholderMode())

	report, err := a.Backfill(context.Background(), "frontend")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count(backfill.StatePlaceholder))
	assert.Equal(t, 1, report.Count(backfill.StateNotEmpty))

	assert.Equal(t, "# Internet", readFile(t, fsys, "/roadmaps/frontend/content/100-internet/index.md"))
	assert.Equal(t, "# DNS\nAlready written.", readFile(t, fsys, "/roadmaps/frontend/content/100-internet/101-dns.md"))
}

func TestApp_BackfillGenerationFailure(t *testing.T) {
	fsys := fixture(t, map[string]string{
		"/roadmaps/frontend/content/100-internet/index.md": "# Internet",
	})

	a := New(fsys, cfg(), testr.New(t))
	a.Generator = generate.Func(func(context.Context, string) (string, error) {
		return "", errors.New("quota exceeded")
	})

	report, err := a.Backfill(context.Background(), "frontend")
	require.Error(t, err)
	var genErr *generate.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, 1, report.Count(backfill.StateFailed))
	assert.Equal(t, 1, report.Count(backfill.StateMissing))
}

func TestApp_Status(t *testing.T) {
	fsys := fixture(t, map[string]string{
		"/roadmaps/frontend/content/100-internet/index.md": "# Internet",
	})

	results, err := New(fsys, cfg(), testr.New(t)).Status("frontend")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, backfill.StateEmpty, results[0].State)
	assert.Equal(t, backfill.StateMissing, results[1].State)
}

func TestApp_InvalidRoadmap(t *testing.T) {
	a := New(fixture(t, nil), cfg(), testr.New(t))

	ids, err := a.Roadmaps()
	require.NoError(t, err)
	assert.Equal(t, []string{"frontend"}, ids)

	_, err = a.Backfill(context.Background(), "backend")
	var invalid *roadmap.InvalidRoadmapError
	require.ErrorAs(t, err, &invalid)

	_, err = a.Status("")
	require.ErrorIs(t, err, roadmap.ErrRoadmapRequired)
}

func TestApp_StrictCollisions(t *testing.T) {
	fsys := fixture(t, map[string]string{
		"/roadmaps/frontend/content/100-internet.md":       "# Internet",
		"/roadmaps/frontend/content/100-internet/index.md": "# Internet",
	})

	c := cfg()
	c.StrictCollisions = true
	_, err := New(fsys, c, testr.New(t)).Backfill(context.Background(), "frontend")
	require.ErrorIs(t, err, ingest.ErrTopicCollision)
}
