// internal/app/system/htmlsanitize/htmlsanitize.go
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// strict strips all markup, leaving plain text.
	strict = bluemonday.StrictPolicy()
)

// Text strips every HTML tag from s and collapses the surrounding
// whitespace. Used when rich catalog fields (course overviews) are shown
// in plain-text contexts such as search excerpts.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
