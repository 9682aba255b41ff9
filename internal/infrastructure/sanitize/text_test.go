package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextSanitizer_SanitizeText(t *testing.T) {
	s := NewTextSanitizer()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain value", "DE123456789", "DE123456789"},
		{"empty", "", ""},
		{"whitespace only", "  \t\n ", ""},
		{"trimmed", "  GB999 ", "GB999"},
		{"script with content", "<script>x</script>123456789", "123456789"},
		{"style with content", "<style>p{}</style>FR1", "FR1"},
		{"inline tags", "<b>DE</b>123", "DE123"},
		{"line breaks and tabs collapse", "DE 123\n456\t789", "DE 123 456 789"},
		{"repeated spaces", "IT   123", "IT 123"},
		{"percent octets", "DE%0A123%3c", "DE123"},
		{"invalid utf-8", "DE\xff123", "DE123"},
		{"control characters", "DE\x07\x1b123", "DE 123"},
		{"ampersand kept as text", "Tom & Jerry", "Tom & Jerry"},
		{"escaped markup is stripped", "&lt;i&gt;NL1&lt;/i&gt;", "NL1"},
		{"unicode kept", "ÖSTERREICH ATU1", "ÖSTERREICH ATU1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.SanitizeText(tt.in))
		})
	}
}

func TestTextSanitizer_Idempotent(t *testing.T) {
	s := NewTextSanitizer()
	for _, in := range []string{"<p>DE 1</p>", "a < b", "x%41y", " A\tB "} {
		once := s.SanitizeText(in)
		assert.Equal(t, once, s.SanitizeText(once), in)
	}
}
