package scaffold

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mublog/internal/blog"
	"git.home.luguber.info/inful/mublog/internal/config"
	"git.home.luguber.info/inful/mublog/internal/content"
	ferrors "git.home.luguber.info/inful/mublog/internal/foundation/errors"
)

func TestInit_CreatesBlog(t *testing.T) {
	dir := t.TempDir()

	p, err := Init(dir, "myblog", nil)
	require.NoError(t, err)
	assert.True(t, blog.IsBlogDirectory(p.Base))

	resources, err := Resources()
	require.NoError(t, err)
	require.NotEmpty(t, resources)
	for _, r := range resources {
		assert.FileExists(t, filepath.Join(p.Base, filepath.FromSlash(r)))
	}

	cfg, err := config.Load(p.ConfigFile)
	require.NoError(t, err)
	require.NoError(t, config.Validate(cfg))
	assert.Equal(t, config.Example().General.BlogAuthor, cfg.General.BlogAuthor)

	reg := content.NewRegistry()
	require.NoError(t, reg.Initialize(p))
	index, ok := reg.IndexPage()
	require.True(t, ok)
	assert.Equal(t, "Home", index.Title)
	assert.NotEmpty(t, reg.Posts())
	assert.NotEmpty(t, reg.Stylesheets())
}

func TestInit_RefusesInsideExistingBlog(t *testing.T) {
	dir := t.TempDir()
	p, err := Init(dir, "blog", nil)
	require.NoError(t, err)

	_, err = Init(p.Base, "nested", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExistingBlog))
	assert.Equal(t, "Can't initialize blog environment in existing blog environment", err.Error())
	assert.NoDirExists(t, filepath.Join(p.Base, "nested"))
}

func TestInit_ExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "taken"), 0o750))

	_, err := Init(dir, "taken", nil)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryAlreadyExists))
}

func TestInit_InvalidName(t *testing.T) {
	for _, name := range []string{"", "a/b", ".."} {
		_, err := Init(t.TempDir(), name, nil)
		assert.Error(t, err, name)
	}
}

func TestNewPost(t *testing.T) {
	p, err := Init(t.TempDir(), "blog", nil)
	require.NoError(t, err)

	post := &content.Post{
		Title:       "A New Post",
		Description: "Something",
		Date:        time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
		Tags:        []string{"go"},
		Content:     "# A New Post\n",
	}
	path, err := NewPost(p, post)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(p.Posts, "a_new_post.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	parsed, err := content.ParsePost(string(data))
	require.NoError(t, err)
	assert.Equal(t, "A New Post", parsed.Title)
	assert.Equal(t, []string{"go"}, parsed.Tags)
}

func TestNewPost_TitleCollisionGetsSuffix(t *testing.T) {
	p, err := Init(t.TempDir(), "blog", nil)
	require.NoError(t, err)

	post := &content.Post{Title: "Hello World", Date: time.Now()}
	path, err := NewPost(p, post)
	require.NoError(t, err)
	assert.Equal(t, "hello_world_1.md", filepath.Base(path))
}

func TestNewPost_SkipsFilenameTakenOnDisk(t *testing.T) {
	p, err := Init(t.TempDir(), "blog", nil)
	require.NoError(t, err)

	renamed := &content.Post{Title: "Bar", Date: time.Now(), Content: "bar"}
	require.NoError(t, os.WriteFile(filepath.Join(p.Posts, "foo.md"), []byte(renamed.Serialize()), 0o644))

	path, err := NewPost(p, &content.Post{Title: "Foo", Date: time.Now(), Content: "foo"})
	require.NoError(t, err)
	assert.Equal(t, "foo_1.md", filepath.Base(path))

	data, err := os.ReadFile(filepath.Join(p.Posts, "foo.md"))
	require.NoError(t, err)
	assert.Equal(t, renamed.Serialize(), string(data))
}

func TestNewPage_SkipsFilenameTakenOnDisk(t *testing.T) {
	p, err := Init(t.TempDir(), "blog", nil)
	require.NoError(t, err)

	other := &content.Page{Title: "Elsewhere", Content: "x"}
	require.NoError(t, os.WriteFile(filepath.Join(p.Pages, "contact.md"), []byte(other.Serialize()), 0o644))

	path, err := NewPage(p, &content.Page{Title: "Contact", Content: "Mail me."})
	require.NoError(t, err)
	assert.Equal(t, "contact_1.md", filepath.Base(path))
}

func TestCreateFile_ExistingFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.md")
	require.NoError(t, os.WriteFile(path, []byte("keep"), 0o644))

	_, err := createFile(path, "new")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryAlreadyExists))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestNewPage_SecondIndexRejected(t *testing.T) {
	p, err := Init(t.TempDir(), "blog", nil)
	require.NoError(t, err)

	_, err = NewPage(p, &content.Page{Title: "Landing", Index: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, content.ErrDuplicateIndexPage))
	assert.NoFileExists(t, filepath.Join(p.Pages, "index.md"))
}

func TestNewPage(t *testing.T) {
	p, err := Init(t.TempDir(), "blog", nil)
	require.NoError(t, err)

	path, err := NewPage(p, &content.Page{Title: "Contact", Content: "Mail me."})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(p.Pages, "contact.md"), path)

	_, err = NewPage(p, &content.Page{Title: "Index"})
	assert.True(t, errors.Is(err, content.ErrReservedIndexTitle))
}
