// Package api holds the typed model of a roadmap definition document.
//
// A definition is a mockup export: a tree of controls where every topic
// drawn on the roadmap is a group control carrying a control name and a
// label child with the visible title.
package api

// ControlKind classifies a control by its typeID.
type ControlKind int

const (
	KindOther ControlKind = iota
	KindGroup
	KindLabel
)

// Type IDs used by the mockup export.
const (
	TypeGroup = "__group__"
	TypeLabel = "Label"
)

// ExternalLinkPrefix marks group controls that link out of the roadmap.
// They have no content file.
const ExternalLinkPrefix = "ext_link"

// KindOf maps a raw typeID to its ControlKind.
func KindOf(typeID string) ControlKind {
	switch typeID {
	case TypeGroup:
		return KindGroup
	case TypeLabel:
		return KindLabel
	default:
		return KindOther
	}
}

func (k ControlKind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindLabel:
		return "label"
	default:
		return "other"
	}
}

// Control is one node of the mockup tree.
type Control struct {
	ID     string
	TypeID string
	Kind   ControlKind
	// Properties carries the fields we read. Everything else is ignored.
	Properties Properties
	// Children of a group. Empty for leaf controls.
	Children []Control
}

// Properties are the control attributes used to build topics.
type Properties struct {
	// ControlName identifies the topic (e.g. "100-internet:how-does-the-internet-work").
	ControlName string
	// Text is the visible caption of a label.
	Text string
}

// Label returns the first direct child of kind label, if any.
func (c Control) Label() (Control, bool) {
	for _, child := range c.Children {
		if child.Kind == KindLabel {
			return child, true
		}
	}
	return Control{}, false
}

// TopicGroup is a group control reduced to what the backfill needs.
type TopicGroup struct {
	// ID is the group's control name.
	ID string
	// Title is the text of the group's first label. Empty when the group has none.
	Title string
	// URL is the normalized topic URL derived from ID.
	URL string
}
