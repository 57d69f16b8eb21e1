package history

import (
	"context"
	"sync"
	"time"

	"git.home.luguber.info/inful/mublog/internal/blog"
	"git.home.luguber.info/inful/mublog/internal/logfields"
	"git.home.luguber.info/inful/mublog/internal/pipeline"
)

// Recorder is a pipeline.Observer that appends the events of one build to a
// Store. Store failures are logged and never fail the build; the first one
// is available from Err.
type Recorder struct {
	ctx   context.Context
	store Store
	build *blog.BuildContext

	mu  sync.Mutex
	err error
}

// NewRecorder creates a recorder for the build described by bc.
func NewRecorder(ctx context.Context, store Store, bc *blog.BuildContext) *Recorder {
	return &Recorder{ctx: ctx, store: store, build: bc}
}

// Start appends the build_started event.
func (r *Recorder) Start() {
	p := BuildStarted{Blog: r.build.Paths.Base}
	if r.build.Config != nil {
		p.Title = r.build.Config.General.BlogTitle
		p.IncludeDrafts = r.build.Config.Build.IncludeDrafts
	}
	r.append(TypeBuildStarted, p)
}

func (r *Recorder) OnStageStart(pipeline.StageID) {}

func (r *Recorder) OnStageComplete(stage pipeline.StageID, d time.Duration, err error) {
	p := StageCompleted{Stage: string(stage), DurationMS: millis(d)}
	if err != nil {
		p.Error = err.Error()
	}
	r.append(TypeStageCompleted, p)
}

// OnBuildComplete appends one document_written event per recorded output
// followed by build_completed.
func (r *Recorder) OnBuildComplete(d time.Duration, err error) {
	outputs := r.build.Outputs()
	for _, o := range outputs {
		r.append(TypeDocumentWritten, DocumentWritten{
			Kind:        string(o.Kind),
			Path:        o.Path,
			Title:       o.Title,
			Bytes:       o.Bytes,
			Fingerprint: o.Fingerprint,
		})
	}
	p := BuildCompleted{DurationMS: millis(d), Documents: len(outputs)}
	if err != nil {
		p.Error = err.Error()
	}
	r.append(TypeBuildCompleted, p)
}

// Err returns the first store failure, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Recorder) append(eventType string, payload any) {
	e, err := NewEvent(r.build.BuildID, eventType, payload)
	if err == nil {
		err = r.store.Append(r.ctx, e)
	}
	if err == nil {
		return
	}

	r.mu.Lock()
	if r.err == nil {
		r.err = err
	}
	r.mu.Unlock()
	r.build.Logger.Warn("Failed to record build history", "event_type", eventType, logfields.Error(err))
}
