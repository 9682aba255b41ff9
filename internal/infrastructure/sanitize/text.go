// Package sanitize turns untrusted submitted values into plain single-line text.
package sanitize

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var percentOctet = regexp.MustCompile(`%[a-fA-F0-9]{2}`)

// TextSanitizer strips markup and normalises a submitted text value.
// It is safe for concurrent use.
type TextSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer creates a sanitizer backed by bluemonday's strict policy.
// The strict policy drops script and style elements with their content.
func NewTextSanitizer() *TextSanitizer {
	return &TextSanitizer{policy: bluemonday.StrictPolicy()}
}

// SanitizeText returns the plain-text form of raw. The result contains no
// tags, no control characters and no line breaks, and is trimmed.
func (s *TextSanitizer) SanitizeText(raw string) string {
	if raw == "" {
		return ""
	}

	text := strings.ToValidUTF8(raw, "")
	text = s.policy.Sanitize(text)
	// bluemonday escapes entities in its output
	text = html.UnescapeString(text)
	// a literal "<" left after unescaping starts a fragment that is never text
	if i := strings.IndexByte(text, '<'); i >= 0 && strings.IndexByte(text[i:], '>') >= 0 {
		text = s.policy.Sanitize(text)
		text = html.UnescapeString(text)
	}

	text = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, text)

	// percent-encoded octets are removed until none remain
	for {
		stripped := percentOctet.ReplaceAllString(text, "")
		if stripped == text {
			break
		}
		text = stripped
	}

	return strings.Join(strings.Fields(text), " ")
}
