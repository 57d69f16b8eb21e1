package pipeline

import "fmt"

// StageError reports which stage and phase failed.
type StageError struct {
	Stage StageID
	Phase Phase
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed during %s: %v", e.Stage, e.Phase, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// FeatureError reports a failing feature hook.
type FeatureError struct {
	Feature   string
	Stage     StageID
	Lifecycle Lifecycle
	Err       error
}

func (e *FeatureError) Error() string {
	return fmt.Sprintf("feature %s failed: %v", e.Feature, e.Err)
}

func (e *FeatureError) Unwrap() error { return e.Err }
