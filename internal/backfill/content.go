package backfill

import (
	"regexp"
	"strings"
)

// leadingHeading matches a heading on the first line only. The line ends at
// \n, \r, U+2028 or U+2029.
var leadingHeading = regexp.MustCompile(`^#[^\r\n\x{2028}\x{2029}]+`)

// IsEmpty reports whether a content file holds nothing but its heading.
// Only the first line is considered a heading, and only when the file
// starts with it.
func IsEmpty(content string) bool {
	if loc := leadingHeading.FindStringIndex(content); loc != nil {
		content = content[loc[1]:]
	}
	return strings.TrimSpace(content) == ""
}

// Placeholder is the content written when no generator is configured.
func Placeholder(title string) string {
	return "# " + title
}
