// Package stages contains the concrete build stages of a blog build.
//
// The default order (see build.DefaultStages) is: create build directories,
// load stylesheets, assets, meta files, posts and pages, apply global
// variables, convert posts and pages from Markdown, wrap them into full HTML
// documents and finally write stylesheets, assets, meta files, pages and
// posts to the build directory.
package stages
