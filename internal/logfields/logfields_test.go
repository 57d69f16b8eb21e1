package logfields

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"BuildID", KeyBuildID, "b1", BuildID("b1")},
		{"Stage", KeyStage, "convert_posts", Stage("convert_posts")},
		{"Phase", KeyPhase, "process", Phase("process")},
		{"Feature", KeyFeature, "navbar", Feature("navbar")},
		{"Lifecycle", KeyLifecycle, "post_process", Lifecycle("post_process")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"File", KeyFile, "post.md", File("post.md")},
		{"Title", KeyTitle, "Hello", Title("Hello")},
		{"URL", KeyURL, "https://example.com", URL("https://example.com")},
		{"Commit", KeyCommit, "abc123", Commit("abc123")},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.attr.Key != c.attrKey {
				t.Fatalf("key mismatch: got %s want %s", c.attr.Key, c.attrKey)
			}
			if c.attr.Value.String() != c.attrVal {
				t.Fatalf("value mismatch: got %s want %s", c.attr.Value.String(), c.attrVal)
			}
		})
	}
}

func TestNumericHelpers(t *testing.T) {
	if a := Count(3); a.Key != KeyCount || a.Value.Int64() != 3 {
		t.Fatalf("unexpected count attr %v", a)
	}
	if a := Bytes(42); a.Key != KeyBytes || a.Value.Int64() != 42 {
		t.Fatalf("unexpected bytes attr %v", a)
	}
	if a := Duration(1500 * time.Microsecond); a.Key != KeyDurationMS || a.Value.Float64() != 1.5 {
		t.Fatalf("unexpected duration attr %v", a)
	}
}

func TestErrorHelper(t *testing.T) {
	if a := Error(nil); a.Value.String() != "" {
		t.Fatalf("expected empty error value, got %q", a.Value.String())
	}
	if a := Error(errors.New("boom")); a.Key != KeyError || a.Value.String() != "boom" {
		t.Fatalf("unexpected error attr %v", a)
	}
}
