package pipeline

import "git.home.luguber.info/inful/mublog/internal/blog"

// StageID names a stage kind. Two instances of the same kind share an id.
type StageID string

// Stage is one step of a build.
type Stage interface {
	ID() StageID
	Initialize(ctx *blog.BuildContext) error
	Process(ctx *blog.BuildContext) error
	Finalize(ctx *blog.BuildContext) error
}

// Phase names the part of a stage's lifecycle that is running.
type Phase string

const (
	PhaseInitialize  Phase = "initialize"
	PhasePreProcess  Phase = "pre_process"
	PhaseProcess     Phase = "process"
	PhasePostProcess Phase = "post_process"
	PhaseFinalize    Phase = "finalize"
)

// Lifecycle is a point around a stage's Process phase where features run.
type Lifecycle int

const (
	PreProcess Lifecycle = iota
	PostProcess
)

func (l Lifecycle) String() string {
	switch l {
	case PreProcess:
		return "pre_process"
	case PostProcess:
		return "post_process"
	default:
		return "unknown"
	}
}

// StageResult is the outcome label recorded for a finished stage.
type StageResult string

const (
	StageResultSuccess StageResult = "success"
	StageResultFailed  StageResult = "failed"
)

// ResultOf maps a stage error to its result label.
func ResultOf(err error) StageResult {
	if err != nil {
		return StageResultFailed
	}
	return StageResultSuccess
}
