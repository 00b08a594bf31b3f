package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/socialkit/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Tom & Jerry say hi", sanitizer.StripHTML(`<b>Tom &amp; Jerry</b> say <a href="/x">hi</a>`))
	assert.Equal(t, "plain", sanitizer.StripHTML("plain"))
}

func TestRemoveControlChars(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ding\nline\tend", sanitizer.RemoveControlChars("di\x07ng\nline\tend\x1b"))
}

func TestSingleLine(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "one two three", sanitizer.SingleLine("  one\r\ntwo\t\tthree \n"))
}

func TestMaxLength(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		n    int
		in   string
		want string
	}{
		{"short", 10, "hello", "hello"},
		{"exact", 5, "hello", "hello"},
		{"cut", 4, "hello", "hel…"},
		{"runes", 3, "привет", "пр…"},
		{"one", 1, "hello", "…"},
		{"zero", 0, "hello", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizer.MaxLength(tt.n)(tt.in))
		})
	}
}

func TestCompose(t *testing.T) {
	t.Parallel()
	clean := sanitizer.Compose(
		sanitizer.StripHTML,
		sanitizer.RemoveControlChars,
		sanitizer.SingleLine,
		sanitizer.MaxLength(12),
	)
	assert.Equal(t, "New message…", clean("<i>New</i>\x07 message\nfrom ana"))
	assert.Equal(t, "x", sanitizer.Apply(" x ", strings.TrimSpace))
	assert.Equal(t, "", sanitizer.Compose[string]()(""))
}
