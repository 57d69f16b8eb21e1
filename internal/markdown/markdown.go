// Package markdown renders post and page bodies from Markdown to HTML.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// Converter turns a Markdown document into an HTML fragment.
type Converter struct {
	md goldmark.Markdown
}

// Options tunes the renderer.
type Options struct {
	// Unsafe allows raw HTML embedded in Markdown to pass through.
	Unsafe bool
	// HeadingIDs generates id attributes for headings.
	HeadingIDs bool
}

// DefaultOptions matches what blog content expects: raw HTML passes through
// so templates such as {{{POST_LISTING}}} can sit inside HTML blocks.
func DefaultOptions() Options {
	return Options{Unsafe: true}
}

// NewConverter builds a GFM-flavoured converter.
func NewConverter(opts Options) *Converter {
	var rendererOpts []goldmark.Option
	var htmlOpts []renderer.Option
	if opts.Unsafe {
		htmlOpts = append(htmlOpts, html.WithUnsafe())
	}
	if opts.HeadingIDs {
		rendererOpts = append(rendererOpts, goldmark.WithParserOptions(parser.WithAutoHeadingID()))
	}
	rendererOpts = append(rendererOpts,
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithRendererOptions(htmlOpts...),
	)
	return &Converter{md: goldmark.New(rendererOpts...)}
}

// Convert renders src and returns the HTML fragment.
func (c *Converter) Convert(src string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
