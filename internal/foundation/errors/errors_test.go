package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "mublog.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}

		file, exists := err.Context().GetString("file")
		if !exists || file != "mublog.yaml" {
			t.Errorf("expected context file=mublog.yaml, got %v", file)
		}
	})

	t.Run("Error detection", func(t *testing.T) {
		err := ConfigError("test error").Build()

		if !IsClassified(err) {
			t.Error("expected error to be classified")
		}
		if !HasCategory(err, CategoryConfig) {
			t.Error("expected error to have config category")
		}
		if !err.IsFatal() {
			t.Error("expected config error to be fatal")
		}
	})

	t.Run("Message includes cause chain", func(t *testing.T) {
		cause := errors.New("permission denied")
		err := WrapError(cause, CategoryFileSystem, "write page").Build()

		if err.Error() != "write page: permission denied" {
			t.Errorf("unexpected message %q", err.Error())
		}
		if !errors.Is(err, cause) {
			t.Error("expected error to wrap cause")
		}
	})
}

func TestAsClassified_FindsWrappedError(t *testing.T) {
	inner := InvariantError("duplicate filename").Build()
	wrapped := fmt.Errorf("load posts from disk: %w", inner)

	got, ok := AsClassified(wrapped)
	if !ok {
		t.Fatal("expected classified error in chain")
	}
	if got.Category() != CategoryInvariant {
		t.Errorf("expected invariant category, got %s", got.Category())
	}
	if GetCategory(errors.New("plain")) != CategoryInternal {
		t.Error("expected unclassified errors to default to internal")
	}
}

func TestClassifiedError_WithContextDoesNotMutate(t *testing.T) {
	base := FeatureError("hook failed").Build()
	derived := base.WithContext("feature", "navbar")

	if _, ok := base.Context().Get("feature"); ok {
		t.Error("expected original context to be untouched")
	}
	if v, _ := derived.Context().GetString("feature"); v != "navbar" {
		t.Errorf("expected derived context feature=navbar, got %q", v)
	}
	if !errors.Is(derived, base) {
		t.Error("expected derived error to match base by category and message")
	}
}
