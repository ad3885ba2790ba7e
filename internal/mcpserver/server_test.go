package mcpserver

import (
	"context"
	"path"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-logr/logr/testr"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/roadmap-content/internal/app"
	"github.com/agentic-research/roadmap-content/internal/config"
)

func newHandlers(t *testing.T) *Handlers {
	t.Helper()
	fsys := memfs.New()
	files := map[string]string{
		"/roadmaps/devops/devops.json": `{"mockup": {"controls": {"control": [
			{"typeID": "__group__", "properties": {"controlName": "100-git"},
			 "children": {"controls": {"control": [{"typeID": "Label", "properties": {"text": "Git"}}]}}}
		]}}}`,
		"/roadmaps/devops/content/100-git.md": "# Git",
	}
	for p, content := range files {
		require.NoError(t, fsys.MkdirAll(path.Dir(p), 0o755))
		require.NoError(t, util.WriteFile(fsys, p, []byte(content), 0o644))
	}
	cfg := config.Default()
	cfg.RoadmapsDir = "/roadmaps"
	return &Handlers{App: app.New(fsys, cfg, testr.New(t))}
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestListRoadmaps(t *testing.T) {
	res, err := newHandlers(t).ListRoadmaps(context.Background(), call(nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "devops", text(t, res))
}

func TestStatusAndBackfill(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	res, err := h.Status(ctx, call(map[string]any{"roadmap": "devops"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, text(t, res), "empty       100-git /git")

	res, err = h.Backfill(ctx, call(map[string]any{"roadmap": "devops"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "placeholder=1 (placeholder mode)", text(t, res))

	res, err = h.Status(ctx, call(map[string]any{"roadmap": "devops"}))
	require.NoError(t, err)
	assert.Contains(t, text(t, res), "empty       100-git /git", "a heading-only placeholder is still empty")
}

func TestToolErrors(t *testing.T) {
	h := newHandlers(t)
	ctx := context.Background()

	res, err := h.Status(ctx, call(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = h.Backfill(ctx, call(map[string]any{"roadmap": "nope"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "Invalid roadmap key nope")
}

func TestNew(t *testing.T) {
	assert.NotNil(t, New(newHandlers(t).App, "test"))
}
