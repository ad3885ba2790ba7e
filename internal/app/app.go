// Package app wires the workspace, indexer, loader and backfiller together
// for the command line and the MCP server.
package app

import (
	"context"

	"github.com/go-git/go-billy/v5"
	"github.com/go-logr/logr"

	"github.com/agentic-research/roadmap-content/api"
	"github.com/agentic-research/roadmap-content/internal/backfill"
	"github.com/agentic-research/roadmap-content/internal/config"
	"github.com/agentic-research/roadmap-content/internal/generate"
	"github.com/agentic-research/roadmap-content/internal/ingest"
	"github.com/agentic-research/roadmap-content/internal/roadmap"
)

// App runs roadmap operations against one roadmaps directory.
type App struct {
	Workspace *roadmap.Workspace
	// Generator is nil in placeholder mode.
	Generator   generate.Generator
	Concurrency int
	Strict      bool
	Log         logr.Logger
}

// New builds an App for cfg. The roadmaps directory is resolved on fsys.
func New(fsys billy.Filesystem, cfg config.Config, log logr.Logger) *App {
	return &App{
		Workspace:   roadmap.NewWorkspace(fsys, cfg.RoadmapsDir),
		Generator:   cfg.Generator(),
		Concurrency: cfg.Concurrency,
		Strict:      cfg.StrictCollisions,
		Log:         log,
	}
}

// PlaceholderMode reports whether generation is disabled.
func (a *App) PlaceholderMode() bool { return a.Generator == nil }

// Roadmaps lists the valid roadmap ids.
func (a *App) Roadmaps() ([]string, error) {
	return a.Workspace.IDs()
}

// Status classifies every topic of roadmap id without writing.
func (a *App) Status(id string) ([]backfill.Result, error) {
	b, groups, err := a.prepare(id)
	if err != nil {
		return nil, err
	}
	return b.Plan(groups), nil
}

// Backfill fills the empty topics of roadmap id.
func (a *App) Backfill(ctx context.Context, id string) (*backfill.Report, error) {
	b, groups, err := a.prepare(id)
	if err != nil {
		return nil, err
	}
	return b.Run(ctx, groups)
}

func (a *App) prepare(id string) (*backfill.Backfiller, []api.TopicGroup, error) {
	rm, err := a.Workspace.Resolve(id)
	if err != nil {
		return nil, nil, err
	}
	log := a.Log.WithValues("roadmap", rm.ID)

	idx, err := ingest.IndexContentTree(a.Workspace.FS, rm.ContentDir, ingest.IndexOptions{
		Strict: a.Strict,
		Log:    log,
	})
	if err != nil {
		return nil, nil, err
	}
	groups, err := ingest.LoadTopicGroupsFile(a.Workspace.FS, rm.DefinitionPath)
	if err != nil {
		return nil, nil, err
	}
	log.V(1).Info("loaded roadmap", "topics", len(groups), "files", idx.Len())

	return &backfill.Backfiller{
		FS:          a.Workspace.FS,
		Index:       idx,
		Generator:   a.Generator,
		RoadmapID:   rm.ID,
		Concurrency: a.Concurrency,
		Log:         log,
	}, groups, nil
}
