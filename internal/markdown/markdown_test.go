package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConvert_Basic(t *testing.T) {
	c := NewConverter(DefaultOptions())

	out, err := c.Convert("# Title\n\nSome *emphasis*.\n")
	require.NoError(t, err)
	require.Contains(t, out, "<h1>Title</h1>")
	require.Contains(t, out, "<em>emphasis</em>")
}

func TestConvert_GFMTable(t *testing.T) {
	c := NewConverter(DefaultOptions())

	out, err := c.Convert("| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)
	require.Contains(t, out, "<table>")
	require.Contains(t, out, "<td>1</td>")
}

func TestConvert_RawHTML(t *testing.T) {
	src := "<div class=\"x\">{{{POST_LISTING}}}</div>\n"

	out, err := NewConverter(DefaultOptions()).Convert(src)
	require.NoError(t, err)
	require.Contains(t, out, "{{{POST_LISTING}}}")

	out, err = NewConverter(Options{}).Convert(src)
	require.NoError(t, err)
	require.NotContains(t, out, "<div")
}

func TestConvert_HeadingIDs(t *testing.T) {
	out, err := NewConverter(Options{HeadingIDs: true}).Convert("## Getting started\n")
	require.NoError(t, err)
	require.Contains(t, out, `id="getting-started"`)
}
