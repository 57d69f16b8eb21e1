package errors

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"
)

type customError struct{ msg string }

func (e *customError) Error() string { return e.msg }

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation error", err: ValidationError("not a blog directory").Build(), expected: 2},
		{name: "parse error", err: ParseError("bad header").Build(), expected: 4},
		{name: "invariant error", err: InvariantError("duplicate index").Build(), expected: 4},
		{name: "config error", err: ConfigError("bad config").Build(), expected: 7},
		{name: "git error", err: GitError("push rejected").Build(), expected: 8},
		{name: "build error", err: BuildError("build failed").Build(), expected: 11},
		{
			name:     "wrapped feature error",
			err:      fmt.Errorf("build process failed: %w", FeatureError("hook failed").Build()),
			expected: 11,
		},
		{name: "unclassified error", err: &customError{msg: "unknown error"}, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	if got := adapter.FormatError(nil); got != "" {
		t.Errorf("expected empty string for nil error, got %q", got)
	}

	err := fmt.Errorf("build process failed: %w", FileSystemError("write post").WithCause(&customError{msg: "disk full"}).Build())
	want := "Error: build process failed: write post: disk full"
	if got := adapter.FormatError(err); got != want {
		t.Errorf("FormatError() = %q, want %q", got, want)
	}
}

func TestCLIErrorAdapter_LogErrorIncludesCategory(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	adapter := NewCLIErrorAdapter(true, logger)

	adapter.logError(ConfigError("missing author").WithContext("field", "blog_author").Build())

	out := buf.String()
	if !bytes.Contains([]byte(out), []byte("category=config")) {
		t.Errorf("expected category attribute in log output, got %q", out)
	}
	if !bytes.Contains([]byte(out), []byte("field=blog_author")) {
		t.Errorf("expected context attribute in log output, got %q", out)
	}
}
