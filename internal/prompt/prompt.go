// Package prompt renders the instruction sent to the text generator for one
// topic.
package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"text/template"

	"github.com/agentic-research/roadmap-content/internal/topic"
)

// ErrNoTopic is returned for a URL without segments.
var ErrNoTopic = errors.New("topic url has no segments")

// introTemplate is the instruction for one topic. The heading, introduction
// and optional code snippet lines are relied upon by golden tests.
const introTemplate = `I will give you a topic and you need to write a brief introduction for that with regards to "{{.RoadmapTitle}}". Your format should be as follows and be in strictly markdown format:

# (Put a heading for the topic without adding parent "Subtopic in Topic" or "Topic in Roadmap" etc.)

(Write me a brief introduction for the topic with regards to "{{.RoadmapTitle}}")

(add any code snippets ONLY if necessary and makes sense)

First topic is: {{if .Child}}{{.Child}} under {{.Parent}}{{else}}{{.Parent}}{{end}}`

var tmpl = template.Must(template.New("intro").Parse(introTemplate))

// Prompt is a rendered instruction plus the names it was built from.
type Prompt struct {
	RoadmapTitle string
	Parent       string
	// Child is empty when the topic URL has a single segment.
	Child string
	Text  string
}

// Topic is the display name of the topic being generated.
func (p Prompt) Topic() string {
	if p.Child != "" {
		return p.Child
	}
	return p.Parent
}

// Build renders the prompt for url on the roadmap identified by roadmapID.
// The last one or two URL segments name the topic; hyphens become spaces.
func Build(url topic.URL, roadmapID string) (Prompt, error) {
	segments := url.Segments()
	if len(segments) == 0 {
		return Prompt{}, ErrNoTopic
	}
	if len(segments) > 2 {
		segments = segments[len(segments)-2:]
	}

	p := Prompt{
		RoadmapTitle: topic.Display(roadmapID),
		Parent:       topic.Display(segments[0]),
	}
	if len(segments) == 2 {
		p.Child = topic.Display(segments[1])
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, p); err != nil {
		return Prompt{}, fmt.Errorf("render prompt for %s: %w", url, err)
	}
	p.Text = buf.String()
	return p, nil
}
