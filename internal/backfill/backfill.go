// Package backfill fills empty topic content files, either with a heading
// placeholder or with text drafted by a Generator.
package backfill

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/agentic-research/roadmap-content/api"
	"github.com/agentic-research/roadmap-content/internal/generate"
	"github.com/agentic-research/roadmap-content/internal/prompt"
	"github.com/agentic-research/roadmap-content/internal/topic"
)

// State is where a topic group ended up.
type State int

const (
	// StateUnresolved: the group's control name gives no topic URL.
	StateUnresolved State = iota
	// StateMissing: no content file matches the topic URL.
	StateMissing
	// StateNotEmpty: the content file already has a body.
	StateNotEmpty
	// StateEmpty: the content file is eligible. Only reported by Plan.
	StateEmpty
	// StatePlaceholder: a heading placeholder was written.
	StatePlaceholder
	// StateGenerated: generated text was written.
	StateGenerated
	// StateFailed: reading, generating or writing failed.
	StateFailed
)

var stateNames = map[State]string{
	StateUnresolved:  "unresolved",
	StateMissing:     "missing",
	StateNotEmpty:    "not-empty",
	StateEmpty:       "empty",
	StatePlaceholder: "placeholder",
	StateGenerated:   "generated",
	StateFailed:      "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Index resolves topic URLs to content files.
type Index interface {
	Lookup(url topic.URL) (string, bool)
}

// Result is the outcome for one topic group.
type Result struct {
	Group api.TopicGroup
	URL   topic.URL
	// Path of the content file, empty when unresolved or missing.
	Path  string
	State State
	Err   error
}

// String formats the result as one status line: state, control name, URL.
func (r Result) String() string {
	return fmt.Sprintf("%-11s %s %s", r.State, r.Group.ID, r.URL)
}

// Backfiller runs the per-group fill for one roadmap.
type Backfiller struct {
	// FS holds the content files referenced by Index.
	FS    billy.Filesystem
	Index Index
	// Generator drafts content. When nil, placeholders are written instead
	// and no generation is attempted.
	Generator generate.Generator
	// RoadmapID names the roadmap in generation prompts.
	RoadmapID string
	// Concurrency caps simultaneous groups. Zero or less means no cap.
	Concurrency int
	Log         logr.Logger
}

// Plan classifies every group without writing anything.
func (b *Backfiller) Plan(groups []api.TopicGroup) []Result {
	results := make([]Result, len(groups))
	for i, g := range groups {
		results[i] = b.inspect(g)
	}
	return results
}

// Run fills every eligible group concurrently and waits for all of them.
// Failures do not stop other groups and finished writes are kept. The
// returned error joins every failure.
func (b *Backfiller) Run(ctx context.Context, groups []api.TopicGroup) (*Report, error) {
	results := make([]Result, len(groups))

	var eg errgroup.Group
	if b.Concurrency > 0 {
		eg.SetLimit(b.Concurrency)
	}
	for i, g := range groups {
		eg.Go(func() error {
			results[i] = b.fill(ctx, g)
			return results[i].Err
		})
	}

	b.Log.Info("Waiting for all files to be written...", "groups", len(groups))
	_ = eg.Wait() // every failure is collected from results

	report := NewReport(results)
	return report, report.Err()
}

func (b *Backfiller) inspect(g api.TopicGroup) Result {
	res := Result{Group: g}

	res.URL = topic.URL(g.URL)
	if res.URL == "" {
		res.URL = topic.FromControlName(g.ID)
	}
	if res.URL == "" {
		res.State = StateUnresolved
		return res
	}

	path, ok := b.Index.Lookup(res.URL)
	if !ok {
		b.Log.Info("Missing file for: "+res.URL.String(), "id", g.ID)
		res.State = StateMissing
		return res
	}
	res.Path = path

	content, err := util.ReadFile(b.FS, path)
	if err != nil {
		res.State = StateFailed
		res.Err = fmt.Errorf("read %s: %w", path, err)
		return res
	}
	if !IsEmpty(string(content)) {
		b.Log.Info("Ignoring "+g.ID+". Not empty.", "path", path)
		res.State = StateNotEmpty
		return res
	}

	res.State = StateEmpty
	return res
}

func (b *Backfiller) fill(ctx context.Context, g api.TopicGroup) Result {
	res := b.inspect(g)
	if res.State != StateEmpty {
		return res
	}
	log := b.Log.WithValues("path", res.Path)

	if b.Generator == nil {
		log.Info("Writing "+g.ID+"..", "placeholder", true)
		return b.write(res, Placeholder(g.Title), StatePlaceholder)
	}

	p, err := prompt.Build(res.URL, b.RoadmapID)
	if err != nil {
		return failed(res, &generate.GenerationError{Topic: g.ID, Err: err})
	}

	log.Info(fmt.Sprintf("Generating '%s'...", p.Topic()))
	text, err := b.Generator.Generate(ctx, p.Text)
	if err != nil {
		return failed(res, withTopic(err, g.ID))
	}

	log.Info("Writing "+g.ID+"..", "placeholder", false)
	return b.write(res, text, StateGenerated)
}

func (b *Backfiller) write(res Result, content string, done State) Result {
	if err := util.WriteFile(b.FS, res.Path, []byte(content), 0o644); err != nil {
		return failed(res, fmt.Errorf("write %s: %w", res.Path, err))
	}
	res.State = done
	return res
}

func failed(res Result, err error) Result {
	res.State = StateFailed
	res.Err = err
	return res
}

// withTopic makes sure a generation failure names its topic.
func withTopic(err error, id string) error {
	var genErr *generate.GenerationError
	if errors.As(err, &genErr) {
		if genErr.Topic != "" {
			return err
		}
		return &generate.GenerationError{Topic: id, Err: genErr.Err}
	}
	return &generate.GenerationError{Topic: id, Err: err}
}
