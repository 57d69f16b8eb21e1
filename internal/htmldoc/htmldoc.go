// Package htmldoc assembles HTML documents and fragments as node trees and
// renders them with golang.org/x/net/html, so text and attribute values are
// always escaped.
package htmldoc

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attr is a single attribute key/value pair.
type Attr struct {
	Key, Val string
}

// Element creates an element node with attrs and children.
func Element(tag string, attrs []Attr, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	for _, a := range attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	for _, c := range children {
		if c != nil {
			n.AppendChild(c)
		}
	}
	return n
}

// Text creates an escaped text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Raw creates a node whose content is emitted verbatim. Use it for HTML that
// was already rendered, such as converted Markdown.
func Raw(s string) *html.Node {
	return &html.Node{Type: html.RawNode, Data: s}
}

// Link creates an anchor with an escaped label.
func Link(href, label string, attrs ...Attr) *html.Node {
	return Element("a", append([]Attr{{"href", href}}, attrs...), Text(label))
}

// RenderFragment renders nodes one after another.
func RenderFragment(nodes ...*html.Node) (string, error) {
	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("render html fragment: %w", err)
		}
	}
	return buf.String(), nil
}
