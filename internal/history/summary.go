package history

import (
	"context"
	"sort"
	"time"
)

// Build statuses reported in a Summary.
const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Summary is the read model of one build reconstructed from its events.
type Summary struct {
	BuildID     string
	Status      string
	Blog        string
	StartedAt   time.Time
	CompletedAt time.Time
	Duration    time.Duration
	Stages      int
	Documents   int
	ErrorStage  string
	Error       string
}

// Summarize folds events into per-build summaries, newest first.
// Events without a build id are ignored.
func Summarize(events []Event) []Summary {
	builds := make(map[string]*Summary)
	var order []*Summary

	for _, e := range events {
		if e.BuildID == "" {
			continue
		}
		s, ok := builds[e.BuildID]
		if !ok {
			s = &Summary{BuildID: e.BuildID, Status: StatusRunning, StartedAt: e.Timestamp}
			builds[e.BuildID] = s
			order = append(order, s)
		}
		apply(s, e)
	}

	out := make([]Summary, 0, len(order))
	for _, s := range order {
		out = append(out, *s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	return out
}

func apply(s *Summary, e Event) {
	switch e.Type {
	case TypeBuildStarted:
		s.StartedAt = e.Timestamp
		var p BuildStarted
		if e.Decode(&p) == nil {
			s.Blog = p.Blog
		}

	case TypeStageCompleted:
		s.Stages++
		var p StageCompleted
		if e.Decode(&p) == nil && p.Error != "" {
			s.ErrorStage = p.Stage
		}

	case TypeDocumentWritten:
		s.Documents++

	case TypeBuildCompleted:
		s.CompletedAt = e.Timestamp
		s.Status = StatusSucceeded
		var p BuildCompleted
		if e.Decode(&p) == nil {
			s.Duration = time.Duration(p.DurationMS * float64(time.Millisecond))
			if p.Error != "" {
				s.Status = StatusFailed
				s.Error = p.Error
			}
		}
	}
}

// RecentBuilds returns at most limit summaries from store, newest first.
// A non-positive limit returns every build.
func RecentBuilds(ctx context.Context, store Store, limit int) ([]Summary, error) {
	events, err := store.Range(ctx, time.Time{}, time.Now().Add(time.Hour))
	if err != nil {
		return nil, err
	}
	summaries := Summarize(events)
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}
