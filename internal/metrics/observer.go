package metrics

import (
	"time"

	"git.home.luguber.info/inful/mublog/internal/pipeline"
)

// Observer forwards pipeline callbacks to a Recorder.
type Observer struct {
	Recorder Recorder
}

// NewObserver wraps r; a nil r records nothing.
func NewObserver(r Recorder) *Observer {
	if r == nil {
		r = NoopRecorder{}
	}
	return &Observer{Recorder: r}
}

func (o *Observer) OnStageStart(pipeline.StageID) {}

func (o *Observer) OnStageComplete(stage pipeline.StageID, d time.Duration, err error) {
	o.Recorder.ObserveStageDuration(string(stage), d)
	result := ResultSuccess
	if err != nil {
		result = ResultFailed
	}
	o.Recorder.IncStageResult(string(stage), result)
}

func (o *Observer) OnBuildComplete(d time.Duration, err error) {
	o.Recorder.ObserveBuildDuration(d)
	outcome := BuildOutcomeSuccess
	if err != nil {
		outcome = BuildOutcomeFailed
	}
	o.Recorder.IncBuildOutcome(outcome)
}
