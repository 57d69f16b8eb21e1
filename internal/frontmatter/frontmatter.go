package frontmatter

import (
	"errors"
	"fmt"
	"strings"
)

// Delimiter is the exact line that opens and closes a header block.
const Delimiter = "---"

// Schema names the fields a header block must contain, in canonical order.
// The block has exactly len(Fields) lines between the delimiters.
type Schema struct {
	Kind   string
	Fields []string
}

// Header holds the parsed key/value pairs of a header block.
type Header map[string]string

// Style captures the newline shape of a document so bodies round-trip unchanged.
type Style struct {
	Newline string
}

var (
	ErrIncompleteHeader   = errors.New("header is incomplete")
	ErrMissingStartMarker = errors.New("start marker missing or formatted incorrectly")
	ErrMissingEndMarker   = errors.New("end marker missing or formatted incorrectly")
	ErrMalformedLine      = errors.New("invalid header line")
	ErrDuplicateField     = errors.New("duplicate header field")
	ErrUnsupportedField   = errors.New("unsupported header field")
)

// Parse splits content into its header block and body.
//
// The first line must be the delimiter, followed by exactly one `key: value`
// line per schema field and a closing delimiter. Everything after the closing
// delimiter is the body, joined with the document's own newline style.
func Parse(content string, schema Schema) (Header, string, error) {
	style := DetectStyle(content)
	lines := strings.Split(content, style.Newline)
	n := len(schema.Fields)

	if len(lines) < n+2 {
		return nil, "", fmt.Errorf("%s %w", schema.Kind, ErrIncompleteHeader)
	}
	if strings.TrimSpace(lines[0]) != Delimiter {
		return nil, "", fmt.Errorf("%s %w", schema.Kind, ErrMissingStartMarker)
	}
	if strings.TrimSpace(lines[n+1]) != Delimiter {
		return nil, "", fmt.Errorf("%s %w", schema.Kind, ErrMissingEndMarker)
	}

	allowed := make(map[string]struct{}, n)
	for _, f := range schema.Fields {
		allowed[f] = struct{}{}
	}

	header := make(Header, n)
	for _, line := range lines[1 : n+1] {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, "", fmt.Errorf("%w: '%s'", ErrMalformedLine, line)
		}
		key = strings.TrimSpace(key)
		if _, known := allowed[key]; !known {
			return nil, "", fmt.Errorf("%w: '%s'", ErrUnsupportedField, key)
		}
		if _, seen := header[key]; seen {
			return nil, "", fmt.Errorf("%w: '%s'", ErrDuplicateField, key)
		}
		header[key] = strings.TrimSpace(value)
	}

	return header, strings.Join(lines[n+2:], style.Newline), nil
}

// Serialize renders a header block in schema order followed by body.
// Fields missing from h are written with an empty value.
func Serialize(schema Schema, h Header, body string) string {
	var sb strings.Builder
	sb.WriteString(Delimiter + "\n")
	for _, f := range schema.Fields {
		sb.WriteString(f)
		sb.WriteString(": ")
		sb.WriteString(h[f])
		sb.WriteString("\n")
	}
	sb.WriteString(Delimiter + "\n")
	sb.WriteString(body)
	return sb.String()
}

// DetectStyle reports the newline sequence of the first line break in content.
func DetectStyle(content string) Style {
	if i := strings.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return Style{Newline: "\r\n"}
	}
	return Style{Newline: "\n"}
}

// Canonical renders the header lines in schema order without delimiters or a
// trailing newline. Two headers with equal values always render identically.
func (h Header) Canonical(schema Schema) string {
	lines := make([]string, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		lines = append(lines, f+": "+strings.TrimSpace(h[f]))
	}
	return strings.Join(lines, "\n")
}
