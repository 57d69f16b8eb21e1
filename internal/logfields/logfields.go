package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyPhase      = "phase"
	KeyFeature    = "feature"
	KeyLifecycle  = "lifecycle"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyTitle      = "title"
	KeyCount      = "count"
	KeySkipped    = "skipped"
	KeyBytes      = "bytes"
	KeyDurationMS = "duration_ms"
	KeyURL        = "url"
	KeyCommit     = "commit"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Phase(name string) slog.Attr     { return slog.String(KeyPhase, name) }
func Feature(name string) slog.Attr   { return slog.String(KeyFeature, name) }
func Lifecycle(name string) slog.Attr { return slog.String(KeyLifecycle, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Title(t string) slog.Attr        { return slog.String(KeyTitle, t) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Skipped(n int) slog.Attr         { return slog.Int(KeySkipped, n) }
func Bytes(n int) slog.Attr           { return slog.Int(KeyBytes, n) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Commit(c string) slog.Attr       { return slog.String(KeyCommit, c) }

// Duration reports d in fractional milliseconds.
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
