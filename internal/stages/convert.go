package stages

import (
	"fmt"

	"git.home.luguber.info/inful/mublog/internal/blog"
	"git.home.luguber.info/inful/mublog/internal/markdown"
	"git.home.luguber.info/inful/mublog/internal/pipeline"
)

// ConvertPosts renders every post body from Markdown to HTML.
type ConvertPosts struct {
	noLifecycle
	Converter *markdown.Converter
}

// NewConvertPosts uses conv, or the default converter when conv is nil.
func NewConvertPosts(conv *markdown.Converter) *ConvertPosts {
	if conv == nil {
		conv = markdown.NewConverter(markdown.DefaultOptions())
	}
	return &ConvertPosts{Converter: conv}
}

func (*ConvertPosts) ID() pipeline.StageID { return ConvertPostsID }

func (s *ConvertPosts) Process(ctx *blog.BuildContext) error {
	for _, p := range ctx.Registry.MutablePosts() {
		out, err := s.Converter.Convert(p.Content)
		if err != nil {
			return fmt.Errorf("post %q: %w", p.Title, err)
		}
		p.Content = out
	}
	return nil
}

// ConvertPages renders every page body from Markdown to HTML.
type ConvertPages struct {
	noLifecycle
	Converter *markdown.Converter
}

// NewConvertPages uses conv, or the default converter when conv is nil.
func NewConvertPages(conv *markdown.Converter) *ConvertPages {
	if conv == nil {
		conv = markdown.NewConverter(markdown.DefaultOptions())
	}
	return &ConvertPages{Converter: conv}
}

func (*ConvertPages) ID() pipeline.StageID { return ConvertPagesID }

func (s *ConvertPages) Process(ctx *blog.BuildContext) error {
	for _, p := range ctx.Registry.MutablePages() {
		out, err := s.Converter.Convert(p.Content)
		if err != nil {
			return fmt.Errorf("page %q: %w", p.Title, err)
		}
		p.Content = out
	}
	return nil
}
