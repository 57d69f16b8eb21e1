package frontmatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var pageSchema = Schema{Kind: "page", Fields: []string{"title", "draft", "index"}}

func TestParse_ValidHeader(t *testing.T) {
	in := "---\ntitle: About me\ndraft: false\nindex: true\n---\n# Hello\n\nbody\n"

	h, body, err := Parse(in, pageSchema)
	require.NoError(t, err)
	require.Equal(t, Header{"title": "About me", "draft": "false", "index": "true"}, h)
	require.Equal(t, "# Hello\n\nbody\n", body)
}

func TestParse_FieldOrderIsFree(t *testing.T) {
	in := "---\nindex: false\ntitle: x\ndraft: true\n---\n"

	h, body, err := Parse(in, pageSchema)
	require.NoError(t, err)
	require.Equal(t, "x", h["title"])
	require.Equal(t, "", body)
}

func TestParse_PreservesCRLFBody(t *testing.T) {
	in := "---\r\ntitle: x\r\ndraft: false\r\nindex: false\r\n---\r\na\r\nb"

	h, body, err := Parse(in, pageSchema)
	require.NoError(t, err)
	require.Equal(t, "x", h["title"])
	require.Equal(t, "a\r\nb", body)
}

func TestParse_ValueMayContainColon(t *testing.T) {
	in := "---\ntitle: Go: a primer\ndraft: false\nindex: false\n---\n"

	h, _, err := Parse(in, pageSchema)
	require.NoError(t, err)
	require.Equal(t, "Go: a primer", h["title"])
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"too short", "---\ntitle: x\n---", ErrIncompleteHeader},
		{"empty", "", ErrIncompleteHeader},
		{"no start marker", "title: x\ndraft: false\nindex: false\n---\nbody", ErrMissingStartMarker},
		{"bad start marker", "----\ntitle: x\ndraft: false\nindex: false\n---\n", ErrMissingStartMarker},
		{"no end marker", "---\ntitle: x\ndraft: false\nindex: false\nbody\n", ErrMissingEndMarker},
		{"extra field pushes end marker", "---\ntitle: x\ndraft: false\nindex: false\nextra: 1\n---\n", ErrMissingEndMarker},
		{"malformed line", "---\ntitle x\ndraft: false\nindex: false\n---\n", ErrMalformedLine},
		{"unsupported field", "---\ntitle: x\ndraft: false\nweight: 3\n---\n", ErrUnsupportedField},
		{"duplicate field", "---\ntitle: x\ntitle: y\nindex: false\n---\n", ErrDuplicateField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(tt.in, pageSchema)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSerialize_RoundTrip(t *testing.T) {
	h := Header{"title": "About", "draft": "true", "index": "false"}
	out := Serialize(pageSchema, h, "hello\n")
	require.Equal(t, "---\ntitle: About\ndraft: true\nindex: false\n---\nhello\n", out)

	parsed, body, err := Parse(out, pageSchema)
	require.NoError(t, err)
	require.Equal(t, h, parsed)
	require.Equal(t, "hello\n", body)
}

func TestHeaderValues(t *testing.T) {
	h := Header{
		"draft": "true",
		"bad":   "yes",
		"date":  "2024-03-09",
		"when":  "09.03.2024",
		"tags":  "go, web ,  blog",
		"holes": "go,,web",
		"blank": "   ",
	}

	b, err := h.Bool("draft")
	require.NoError(t, err)
	require.True(t, b)

	_, err = h.Bool("bad")
	require.ErrorIs(t, err, ErrInvalidBool)

	d, err := h.Date("date")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), d)

	_, err = h.Date("when")
	require.ErrorIs(t, err, ErrInvalidDate)

	tags, err := h.List("tags")
	require.NoError(t, err)
	require.Equal(t, []string{"go", "web", "blog"}, tags)

	_, err = h.List("holes")
	require.ErrorIs(t, err, ErrInvalidList)

	_, err = h.String("blank")
	require.ErrorIs(t, err, ErrEmptyValue)

	_, err = h.String("missing")
	require.ErrorIs(t, err, ErrMissingField)

	require.Equal(t, "go, web", FormatList([]string{"go", "web"}))
	require.Equal(t, "2024-03-09", FormatDate(d))
	require.Equal(t, "false", FormatBool(false))
}

func TestHeaderCanonical(t *testing.T) {
	a := Header{"index": "false", "title": " x ", "draft": "true"}
	b := Header{"title": "x", "draft": "true", "index": "false"}

	require.Equal(t, "title: x\ndraft: true\nindex: false", a.Canonical(pageSchema))
	require.Equal(t, a.Canonical(pageSchema), b.Canonical(pageSchema))
}
