package content

import (
	"fmt"
	"strings"

	ferrors "git.home.luguber.info/inful/mublog/internal/foundation/errors"
)

// IndexStem is the filename stem reserved for the landing page.
const IndexStem = "index"

// maxSuffix bounds the collision search for derived filenames.
const maxSuffix = 10000

var (
	ErrDuplicateIndexPage = ferrors.InvariantError("Duplicate index pages are not allowed.").Build()
	ErrReservedIndexTitle = ferrors.InvariantError("Non-index page can't be named 'index'").Build()
	ErrEmptyTitle         = ferrors.ValidationError("title cannot be empty or consist of only whitespace characters").Build()
	ErrEmptyFilename      = ferrors.ValidationError("filename cannot be empty").Build()
	ErrDuplicateFilename  = ferrors.InvariantError("duplicate filename").Build()
	ErrFilenamesExhausted = ferrors.InvariantError("no free filename left for title").Build()
)

// Registry is the single owner of all content of one build.
// It is not safe for concurrent use.
type Registry struct {
	posts       []*Post
	pages       []*Page
	stylesheets []*Stylesheet
	assets      []*Asset
	metaFiles   []*Asset

	// claimed holds filenames used by files that are not registered here.
	claimed map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Claim marks filenames as taken without registering any content, so
// derived post and page names skip them.
func (r *Registry) Claim(names ...string) {
	if r.claimed == nil {
		r.claimed = make(map[string]struct{}, len(names))
	}
	for _, n := range names {
		r.claimed[n] = struct{}{}
	}
}

func (r *Registry) isClaimed(names ...string) bool {
	for _, n := range names {
		if _, ok := r.claimed[n]; ok {
			return true
		}
	}
	return false
}

// RegisterPost assigns the post its filenames and appends it.
func (r *Registry) RegisterPost(p *Post) error {
	stem := NormalizeTitle(p.Title)
	if stem == "" {
		return ErrEmptyTitle
	}
	htmlName, mdName, err := uniqueFilenames(stem, func(h, m string) bool {
		for _, existing := range r.posts {
			if existing.HTMLFilename == h || existing.MDFilename == m {
				return true
			}
		}
		return r.isClaimed(h, m)
	})
	if err != nil {
		return err
	}
	p.HTMLFilename, p.MDFilename = htmlName, mdName
	r.posts = append(r.posts, p)
	return nil
}

// RegisterPage assigns the page its filenames and appends it. The index page
// always gets index.html / index.md.
func (r *Registry) RegisterPage(p *Page) error {
	stem := NormalizeTitle(p.Title)
	if stem == "" {
		return ErrEmptyTitle
	}

	if p.Index {
		if _, ok := r.IndexPage(); ok {
			return ErrDuplicateIndexPage
		}
		p.HTMLFilename, p.MDFilename = IndexStem+".html", IndexStem+".md"
		r.pages = append(r.pages, p)
		return nil
	}
	if stem == IndexStem {
		return ErrReservedIndexTitle
	}

	htmlName, mdName, err := uniqueFilenames(stem, func(h, m string) bool {
		for _, existing := range r.pages {
			if existing.HTMLFilename == h || existing.MDFilename == m {
				return true
			}
		}
		return r.isClaimed(h, m)
	})
	if err != nil {
		return err
	}
	p.HTMLFilename, p.MDFilename = htmlName, mdName
	r.pages = append(r.pages, p)
	return nil
}

// RegisterStylesheet appends a stylesheet with a unique filename.
func (r *Registry) RegisterStylesheet(s *Stylesheet) error {
	if err := checkFilename(s.Filename, func(name string) bool {
		for _, existing := range r.stylesheets {
			if existing.Filename == name {
				return true
			}
		}
		return false
	}); err != nil {
		return err
	}
	r.stylesheets = append(r.stylesheets, s)
	return nil
}

// RegisterAsset appends an asset with a unique filename.
func (r *Registry) RegisterAsset(a *Asset) error {
	if err := checkFilename(a.Filename, containsAsset(r.assets)); err != nil {
		return err
	}
	r.assets = append(r.assets, a)
	return nil
}

// RegisterMetaFile appends a meta file (favicons, manifests) with a unique filename.
func (r *Registry) RegisterMetaFile(a *Asset) error {
	if err := checkFilename(a.Filename, containsAsset(r.metaFiles)); err != nil {
		return err
	}
	r.metaFiles = append(r.metaFiles, a)
	return nil
}

// Posts returns copies of all posts in registration order.
func (r *Registry) Posts() []Post {
	out := make([]Post, 0, len(r.posts))
	for _, p := range r.posts {
		c := *p
		c.Tags = append([]string(nil), p.Tags...)
		out = append(out, c)
	}
	return out
}

// Pages returns copies of all pages in registration order.
func (r *Registry) Pages() []Page {
	out := make([]Page, 0, len(r.pages))
	for _, p := range r.pages {
		out = append(out, *p)
	}
	return out
}

// Stylesheets returns copies of all stylesheets in registration order.
func (r *Registry) Stylesheets() []Stylesheet {
	out := make([]Stylesheet, 0, len(r.stylesheets))
	for _, s := range r.stylesheets {
		out = append(out, *s)
	}
	return out
}

// Assets returns copies of all assets in registration order.
func (r *Registry) Assets() []Asset {
	return copyAssets(r.assets)
}

// MetaFiles returns copies of all meta files in registration order.
func (r *Registry) MetaFiles() []Asset {
	return copyAssets(r.metaFiles)
}

// MutablePosts exposes the stored posts for in-place content rewriting.
// Callers must not change titles or filenames.
func (r *Registry) MutablePosts() []*Post {
	return append([]*Post(nil), r.posts...)
}

// MutablePages exposes the stored pages for in-place content rewriting.
// Callers must not change titles, filenames or the index flag.
func (r *Registry) MutablePages() []*Page {
	return append([]*Page(nil), r.pages...)
}

// IndexPage returns the landing page, if one is registered.
func (r *Registry) IndexPage() (*Page, bool) {
	for _, p := range r.pages {
		if p.Index {
			return p, true
		}
	}
	return nil, false
}

// PageByTitle finds a page by its exact (trimmed) title.
func (r *Registry) PageByTitle(title string) (*Page, bool) {
	title = strings.TrimSpace(title)
	for _, p := range r.pages {
		if p.Title == title {
			return p, true
		}
	}
	return nil, false
}

// uniqueFilenames searches stem, stem_1, stem_2, ... until both the .html and
// the .md name are free. taken reports whether either name is in use.
func uniqueFilenames(stem string, taken func(htmlName, mdName string) bool) (string, string, error) {
	base := stem
	for i := 0; i <= maxSuffix; i++ {
		if i > 0 {
			base = fmt.Sprintf("%s_%d", stem, i)
		}
		h, m := base+".html", base+".md"
		if !taken(h, m) {
			return h, m, nil
		}
	}
	return "", "", ErrFilenamesExhausted.WithContext("stem", stem)
}

func checkFilename(name string, taken func(string) bool) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyFilename
	}
	if taken(name) {
		return ErrDuplicateFilename.WithContext("filename", name)
	}
	return nil
}

func containsAsset(list []*Asset) func(string) bool {
	return func(name string) bool {
		for _, a := range list {
			if a.Filename == name {
				return true
			}
		}
		return false
	}
}

func copyAssets(list []*Asset) []Asset {
	out := make([]Asset, 0, len(list))
	for _, a := range list {
		out = append(out, *a)
	}
	return out
}
