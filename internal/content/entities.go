package content

import (
	"strings"
	"time"

	ferrors "git.home.luguber.info/inful/mublog/internal/foundation/errors"
	"git.home.luguber.info/inful/mublog/internal/frontmatter"
)

// Header field names.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDate        = "date"
	FieldTags        = "tags"
	FieldDraft       = "draft"
	FieldIndex       = "index"
)

var (
	// PostSchema is the header layout of a post file.
	PostSchema = frontmatter.Schema{
		Kind:   "post",
		Fields: []string{FieldTitle, FieldDescription, FieldDate, FieldTags, FieldDraft},
	}
	// PageSchema is the header layout of a page file.
	PageSchema = frontmatter.Schema{
		Kind:   "page",
		Fields: []string{FieldTitle, FieldDraft, FieldIndex},
	}
)

// Post is a dated article. Content holds Markdown after loading, HTML after
// conversion and a full document after wrapping.
type Post struct {
	Title       string
	Description string
	Date        time.Time
	Tags        []string
	Draft       bool
	Content     string

	HTMLFilename string
	MDFilename   string

	// Fingerprint identifies the source file contents; empty for entities
	// that were not parsed from a file.
	Fingerprint string
}

// Page is a standalone page. At most one page per blog has Index set.
type Page struct {
	Title   string
	Draft   bool
	Index   bool
	Content string

	HTMLFilename string
	MDFilename   string
	Fingerprint  string
}

// Stylesheet is a CSS file copied to build/css.
type Stylesheet struct {
	Filename string
	Content  []byte
}

// Asset is an opaque file copied verbatim. Meta files use the same type.
type Asset struct {
	Filename string
	Content  []byte
}

// ParsePost parses a post file.
func ParsePost(raw string) (*Post, error) {
	h, body, err := frontmatter.Parse(raw, PostSchema)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryParse, "parse post").Build()
	}

	p := &Post{
		Description: h[FieldDescription],
		Content:     body,
		Fingerprint: Fingerprint(PostSchema, h, body),
	}
	if p.Title, err = h.String(FieldTitle); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryParse, "parse post").Build()
	}
	if p.Date, err = h.Date(FieldDate); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryParse, "parse post").Build()
	}
	if strings.TrimSpace(h[FieldTags]) != "" {
		if p.Tags, err = h.List(FieldTags); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryParse, "parse post").Build()
		}
	}
	if p.Draft, err = h.Bool(FieldDraft); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryParse, "parse post").Build()
	}
	return p, nil
}

// ParsePage parses a page file.
func ParsePage(raw string) (*Page, error) {
	h, body, err := frontmatter.Parse(raw, PageSchema)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryParse, "parse page").Build()
	}

	p := &Page{Content: body, Fingerprint: Fingerprint(PageSchema, h, body)}
	if p.Title, err = h.String(FieldTitle); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryParse, "parse page").Build()
	}
	if p.Draft, err = h.Bool(FieldDraft); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryParse, "parse page").Build()
	}
	if p.Index, err = h.Bool(FieldIndex); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryParse, "parse page").Build()
	}
	return p, nil
}

// Serialize renders the post back into its on-disk file format.
func (p *Post) Serialize() string {
	return frontmatter.Serialize(PostSchema, frontmatter.Header{
		FieldTitle:       p.Title,
		FieldDescription: p.Description,
		FieldDate:        frontmatter.FormatDate(p.Date),
		FieldTags:        frontmatter.FormatList(p.Tags),
		FieldDraft:       frontmatter.FormatBool(p.Draft),
	}, p.Content)
}

// Serialize renders the page back into its on-disk file format.
func (p *Page) Serialize() string {
	return frontmatter.Serialize(PageSchema, frontmatter.Header{
		FieldTitle: p.Title,
		FieldDraft: frontmatter.FormatBool(p.Draft),
		FieldIndex: frontmatter.FormatBool(p.Index),
	}, p.Content)
}
