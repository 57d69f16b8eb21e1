// Package paths resolves the on-disk layout of a blog directory.
package paths

import "path/filepath"

// ConfigFileName is the blog configuration file at the root of a blog directory.
const ConfigFileName = "mublog.yaml"

// Paths holds every directory and file the build reads or writes.
type Paths struct {
	Base       string
	ConfigFile string

	Assets string
	CSS    string
	Meta   string
	Posts  string
	Pages  string

	Build       string
	BuildPages  string
	BuildPosts  string
	BuildCSS    string
	BuildAssets string
	BuildMeta   string
}

// New derives the full layout from the blog root.
func New(base string) Paths {
	p := Paths{
		Base:       base,
		ConfigFile: filepath.Join(base, ConfigFileName),
		Assets:     filepath.Join(base, "assets"),
		CSS:        filepath.Join(base, "css"),
		Meta:       filepath.Join(base, "meta"),
		Posts:      filepath.Join(base, "posts"),
		Pages:      filepath.Join(base, "pages"),
	}
	return p.WithBuild(filepath.Join(base, "build"))
}

// WithBuild returns a copy of p whose output tree is rooted at build.
func (p Paths) WithBuild(build string) Paths {
	p.Build = build
	p.BuildPages = build
	p.BuildPosts = filepath.Join(build, "posts")
	p.BuildCSS = filepath.Join(build, "css")
	p.BuildAssets = filepath.Join(build, "assets")
	p.BuildMeta = filepath.Join(build, "meta")
	return p
}

// SourceDirs lists the input directories in load order.
func (p Paths) SourceDirs() []string {
	return []string{p.CSS, p.Assets, p.Meta, p.Posts, p.Pages}
}

// BuildDirs lists the output directories in creation order.
func (p Paths) BuildDirs() []string {
	return []string{p.Build, p.BuildPosts, p.BuildCSS, p.BuildAssets, p.BuildMeta}
}
