// Package topic canonicalizes topic identifiers.
//
// Content files and roadmap definition controls name the same topics in
// different ways. Both sides go through Canonical so that the join between
// them is a plain string comparison.
package topic

import (
	"path/filepath"
	"regexp"
	"strings"
)

// URL is a canonical topic path such as "/internet/how-does-the-internet-work".
// The zero value means the topic could not be resolved.
type URL string

var (
	// orderingSegment matches the "/101-" prefix of an ordered path segment.
	orderingSegment = regexp.MustCompile(`/\d+-`)
	// leadingOrdering matches the "100-" prefix of a control name.
	leadingOrdering = regexp.MustCompile(`^\d+-`)
)

const (
	indexFile   = "/index.md"
	contentExt  = ".md"
	idSeparator = ":"
)

// Canonical normalizes a slash separated topic path.
func Canonical(s string) URL {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}
	s = orderingSegment.ReplaceAllString(s, "/")
	s = strings.TrimSuffix(s, indexFile)
	s = strings.TrimSuffix(s, contentExt)
	s = strings.TrimRight(s, "/")
	return URL(s)
}

// FromContentPath maps a content file path below root to its topic URL.
// An index file maps to the URL of its directory.
func FromContentPath(root, p string) URL {
	p = filepath.ToSlash(p)
	root = strings.TrimRight(filepath.ToSlash(root), "/")
	if root != "" {
		p = strings.TrimPrefix(p, root)
	}
	return Canonical(p)
}

// FromControlName maps a roadmap definition control name to its topic URL.
// "100-internet:how-does-the-internet-work" becomes
// "/internet/how-does-the-internet-work". Only control names use ":" as a
// separator; a colon in a content file name is kept.
func FromControlName(id string) URL {
	id = leadingOrdering.ReplaceAllString(strings.TrimSpace(id), "")
	return Canonical(strings.ReplaceAll(id, idSeparator, "/"))
}

// Segments returns the non-empty path segments of u.
func (u URL) Segments() []string {
	var out []string
	for _, s := range strings.Split(string(u), "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (u URL) String() string { return string(u) }

// Display turns a slug into words: "how-does-it-work" becomes "how does it work".
func Display(slug string) string {
	return strings.ReplaceAll(slug, "-", " ")
}
