// Package content owns the blog's posts, pages, stylesheets, assets and meta
// files.
//
// The Registry assigns collision-free output filenames at registration time and
// guarantees that at most one page is the landing page. Entities loaded from
// disk go through the same Register* calls, so a blog directory can never
// produce a registry state that runtime registration would reject.
package content
