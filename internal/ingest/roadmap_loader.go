package ingest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/agentic-research/roadmap-content/api"
	"github.com/agentic-research/roadmap-content/internal/topic"
)

// ErrNoControls is returned when a definition has no top-level control list.
var ErrNoControls = errors.New("roadmap definition has no mockup controls")

var (
	controlList   = jp.MustParseString("$.mockup.controls.control")
	childControls = jp.MustParseString("$.children.controls.control[*]")
)

// LoadTopicGroupsFile reads a roadmap definition from fsys and returns its
// topic groups.
func LoadTopicGroupsFile(fsys billy.Filesystem, path string) ([]api.TopicGroup, error) {
	data, err := util.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read roadmap definition: %w", err)
	}
	groups, err := LoadTopicGroups(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return groups, nil
}

// LoadTopicGroups parses a roadmap definition and returns one TopicGroup
// per top-level group control, in document order. External link groups and
// groups without a control name are left out.
func LoadTopicGroups(data []byte) ([]api.TopicGroup, error) {
	controls, err := ParseControls(data)
	if err != nil {
		return nil, err
	}

	var groups []api.TopicGroup
	for _, c := range controls {
		if c.Kind != api.KindGroup {
			continue
		}
		name := c.Properties.ControlName
		if name == "" || strings.HasPrefix(name, api.ExternalLinkPrefix) {
			continue
		}
		g := api.TopicGroup{
			ID:  name,
			URL: topic.FromControlName(name).String(),
		}
		if label, ok := c.Label(); ok {
			g.Title = label.Properties.Text
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// ParseControls decodes the top-level controls of a roadmap definition into
// typed controls, children included.
func ParseControls(data []byte) ([]api.Control, error) {
	doc, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse roadmap definition: %w", err)
	}

	found := controlList.Get(doc)
	if len(found) == 0 {
		return nil, ErrNoControls
	}
	list, ok := found[0].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: control is %T, not a list", ErrNoControls, found[0])
	}

	controls := make([]api.Control, 0, len(list))
	for _, raw := range list {
		if c, ok := decodeControl(raw); ok {
			controls = append(controls, c)
		}
	}
	return controls, nil
}

// decodeControl converts one decoded JSON value into a Control. Values that
// are not objects are rejected; missing fields stay at their zero value.
func decodeControl(raw any) (api.Control, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return api.Control{}, false
	}

	c := api.Control{
		ID:     stringField(m, "ID"),
		TypeID: stringField(m, "typeID"),
	}
	c.Kind = api.KindOf(c.TypeID)

	if props, ok := m["properties"].(map[string]any); ok {
		c.Properties.ControlName = stringField(props, "controlName")
		c.Properties.Text = stringField(props, "text")
	}

	for _, child := range childControls.Get(m) {
		if cc, ok := decodeControl(child); ok {
			c.Children = append(c.Children, cc)
		}
	}
	return c, true
}

func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case int64, float64:
		return fmt.Sprint(v)
	default:
		return ""
	}
}
