// Package history records build events in a SQLite database so past builds
// can be listed by the info command.
package history

import (
	"encoding/json"
	"time"

	"git.home.luguber.info/inful/mublog/internal/foundation/errors"
)

// Event types written by the Recorder.
const (
	TypeBuildStarted    = "build_started"
	TypeStageCompleted  = "stage_completed"
	TypeDocumentWritten = "document_written"
	TypeBuildCompleted  = "build_completed"
)

// Event is one row of the events table.
type Event struct {
	ID        int64
	BuildID   string
	Type      string
	Timestamp time.Time
	Payload   []byte
	Metadata  map[string]string
}

// BuildStarted is the payload of a build_started event.
type BuildStarted struct {
	Blog          string `json:"blog"`
	Title         string `json:"title,omitempty"`
	IncludeDrafts bool   `json:"include_drafts"`
}

// StageCompleted is the payload of a stage_completed event.
type StageCompleted struct {
	Stage      string  `json:"stage"`
	DurationMS float64 `json:"duration_ms"`
	Error      string  `json:"error,omitempty"`
}

// DocumentWritten is the payload of a document_written event.
type DocumentWritten struct {
	Kind        string `json:"kind"`
	Path        string `json:"path"`
	Title       string `json:"title,omitempty"`
	Bytes       int    `json:"bytes"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// BuildCompleted is the payload of a build_completed event.
type BuildCompleted struct {
	DurationMS float64 `json:"duration_ms"`
	Documents  int     `json:"documents"`
	Error      string  `json:"error,omitempty"`
}

// NewEvent marshals payload into an event of the given type.
func NewEvent(buildID, eventType string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, errors.HistoryError("failed to marshal event payload").
			WithCause(err).
			WithContext("build_id", buildID).
			WithContext("event_type", eventType).
			Build()
	}
	return Event{
		BuildID:   buildID,
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   data,
	}, nil
}

// Decode unmarshals the event payload into v.
func (e Event) Decode(v any) error {
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return errors.HistoryError("failed to decode event payload").
			WithCause(err).
			WithContext("event_type", e.Type).
			Build()
	}
	return nil
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
