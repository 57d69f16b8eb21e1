package pipeline

import "time"

// Observer receives lifecycle callbacks from a pipeline run.
type Observer interface {
	OnStageStart(stage StageID)
	OnStageComplete(stage StageID, duration time.Duration, err error)
	OnBuildComplete(duration time.Duration, err error)
}

// NoopObserver ignores every callback.
type NoopObserver struct{}

func (NoopObserver) OnStageStart(StageID)                           {}
func (NoopObserver) OnStageComplete(StageID, time.Duration, error) {}
func (NoopObserver) OnBuildComplete(time.Duration, error)          {}

// MultiObserver fans callbacks out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) OnStageStart(stage StageID) {
	for _, o := range m {
		o.OnStageStart(stage)
	}
}

func (m MultiObserver) OnStageComplete(stage StageID, d time.Duration, err error) {
	for _, o := range m {
		o.OnStageComplete(stage, d, err)
	}
}

func (m MultiObserver) OnBuildComplete(d time.Duration, err error) {
	for _, o := range m {
		o.OnBuildComplete(d, err)
	}
}
