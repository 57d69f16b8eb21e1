package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mublog/internal/content"
	"git.home.luguber.info/inful/mublog/internal/history"
	"git.home.luguber.info/inful/mublog/internal/paths"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 30, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a rather long title that goes on", 10, "a rathe..."},
		{"ünïcödé títle", 8, "ünïcö..."},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.in, tt.max), tt.in)
	}
}

func TestStats(t *testing.T) {
	info := &Info{
		Posts: []content.Post{{Title: "a"}, {Title: "b", Draft: true}, {Title: "c"}},
		Pages: []content.Page{{Title: "home", Index: true}, {Title: "wip", Draft: true}},
	}
	assert.Equal(t, Stats{Posts: 3, DraftPosts: 1, Pages: 2, DraftPages: 1}, info.Stats())
}

func TestWriteMarkdown(t *testing.T) {
	info := &Info{
		Title: "My Blog",
		Posts: []content.Post{
			{Title: "Hello World", Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
			{Title: "Draft Thoughts", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Draft: true},
		},
		Pages: []content.Page{{Title: "Home", Index: true}},
		Builds: []history.Summary{{
			BuildID:    "b1",
			Status:     history.StatusFailed,
			StartedAt:  time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			Duration:   1500 * time.Millisecond,
			Documents:  4,
			ErrorStage: "load_posts",
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, info))
	out := buf.String()

	assert.Contains(t, out, "# My Blog")
	assert.Contains(t, out, "## Posts")
	assert.Contains(t, out, "Hello World")
	assert.Contains(t, out, "2024-01-15")
	assert.Contains(t, out, "## Pages")
	assert.Contains(t, out, "Home")
	assert.Contains(t, out, "2 Posts (1 Finalized, 1 Drafts)")
	assert.Contains(t, out, "1 Pages (1 Finalized, 0 Drafts)")
	assert.Contains(t, out, "## Recent Builds")
	assert.Contains(t, out, "load_posts")
	assert.Contains(t, out, "1.5s")
}

func TestWriteMarkdown_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, &Info{}))
	out := buf.String()
	assert.Contains(t, out, "# Blog")
	assert.Contains(t, out, "No posts yet.")
	assert.Contains(t, out, "No pages yet.")
	assert.NotContains(t, out, "Recent Builds")
}

func TestLoad(t *testing.T) {
	p := paths.New(t.TempDir())
	require.NoError(t, os.MkdirAll(p.Posts, 0o750))
	require.NoError(t, os.MkdirAll(p.Pages, 0o750))

	post := &content.Post{Title: "First", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Content: "hi"}
	require.NoError(t, os.WriteFile(filepath.Join(p.Posts, "first.md"), []byte(post.Serialize()), 0o644))
	page := &content.Page{Title: "Home", Index: true}
	require.NoError(t, os.WriteFile(filepath.Join(p.Pages, "home.md"), []byte(page.Serialize()), 0o644))

	info, err := Load(p)
	require.NoError(t, err)
	require.Len(t, info.Posts, 1)
	require.Len(t, info.Pages, 1)
	assert.Equal(t, "First", info.Posts[0].Title)
	assert.True(t, info.Pages[0].Index)
}

func TestLoad_DuplicateIndex(t *testing.T) {
	p := paths.New(t.TempDir())
	require.NoError(t, os.MkdirAll(p.Posts, 0o750))
	require.NoError(t, os.MkdirAll(p.Pages, 0o750))
	for _, name := range []string{"a.md", "b.md"} {
		page := &content.Page{Title: name, Index: true}
		require.NoError(t, os.WriteFile(filepath.Join(p.Pages, name), []byte(page.Serialize()), 0o644))
	}

	_, err := Load(p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, content.ErrDuplicateIndexPage))
}
