// Package build runs one complete blog build.
//
// BuildService assembles the default stage list and the configured features
// into a pipeline, attaches the metrics and build-history observers and
// reports what the build wrote. The CLI and the preview server both route
// through it.
package build
