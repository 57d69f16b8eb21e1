package htmldoc

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Document is a builder for a complete HTML page.
type Document struct {
	lang   string
	title  string
	head   []*html.Node
	header string
	main   string
	footer string
}

// NewDocument starts an empty English document.
func NewDocument() *Document {
	return &Document{lang: "en"}
}

// WithLang sets the html lang attribute.
func (d *Document) WithLang(lang string) *Document {
	d.lang = lang
	return d
}

// WithTitle sets the <title>.
func (d *Document) WithTitle(title string) *Document {
	d.title = title
	return d
}

// WithMeta adds <meta name=... content=...>. Empty content is skipped.
func (d *Document) WithMeta(name, content string) *Document {
	if content == "" {
		return d
	}
	d.head = append(d.head, Element("meta", []Attr{{"name", name}, {"content", content}}))
	return d
}

// WithProperty adds <meta property=... content=...> as used by Open Graph.
func (d *Document) WithProperty(property, content string) *Document {
	if content == "" {
		return d
	}
	d.head = append(d.head, Element("meta", []Attr{{"property", property}, {"content", content}}))
	return d
}

// WithStylesheet links a stylesheet.
func (d *Document) WithStylesheet(href string) *Document {
	return d.WithHeadLink("stylesheet", href, "")
}

// WithHeadLink adds a <link>; typ may be empty.
func (d *Document) WithHeadLink(rel, href, typ string) *Document {
	attrs := []Attr{{"rel", rel}, {"href", href}}
	if typ != "" {
		attrs = append(attrs, Attr{"type", typ})
	}
	d.head = append(d.head, Element("link", attrs))
	return d
}

// WithHeader sets pre-rendered HTML placed in <header> before <main>.
func (d *Document) WithHeader(rendered string) *Document {
	d.header = rendered
	return d
}

// WithMain sets the pre-rendered HTML placed in <main>.
func (d *Document) WithMain(rendered string) *Document {
	d.main = rendered
	return d
}

// WithFooter sets the pre-rendered HTML placed in <footer>.
func (d *Document) WithFooter(rendered string) *Document {
	d.footer = rendered
	return d
}

// Render produces the full document text.
func (d *Document) Render() (string, error) {
	head := Element("head", nil,
		Element("meta", []Attr{{"charset", "utf-8"}}),
		Element("meta", []Attr{{"name", "viewport"}, {"content", "width=device-width, initial-scale=1"}}),
		Element("title", nil, Text(d.title)),
	)
	for _, n := range d.head {
		head.AppendChild(n)
	}

	body := Element("body", nil)
	if d.header != "" {
		body.AppendChild(Element("header", nil, Raw(d.header)))
	}
	body.AppendChild(Element("main", nil, Raw(d.main)))
	if d.footer != "" {
		body.AppendChild(Element("footer", nil, Raw(d.footer)))
	}

	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	root.AppendChild(Element("html", []Attr{{"lang", d.lang}}, head, body))

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", fmt.Errorf("render html document: %w", err)
	}
	buf.WriteString("\n")
	return buf.String(), nil
}

// InjectHead inserts rendered nodes right before the first </head> of doc.
// It reports false when doc has no closing head tag.
func InjectHead(doc string, nodes ...*html.Node) (string, bool, error) {
	i := strings.Index(doc, "</head>")
	if i < 0 {
		return doc, false, nil
	}
	frag, err := RenderFragment(nodes...)
	if err != nil {
		return doc, false, err
	}
	return doc[:i] + frag + doc[i:], true, nil
}
