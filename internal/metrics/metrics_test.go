package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("s", time.Second)
	r.IncStageResult("s", ResultSuccess)
	r.ObserveBuildDuration(time.Second)
	r.IncBuildOutcome(BuildOutcomeFailed)
	r.SetDocumentsWritten("post", 3)
}

func TestObserver_Prometheus(t *testing.T) {
	reg := prom.NewRegistry()
	rec := NewPrometheusRecorder(reg)
	obs := NewObserver(rec)

	obs.OnStageStart("load_posts")
	obs.OnStageComplete("load_posts", 10*time.Millisecond, nil)
	obs.OnStageComplete("write_posts", time.Millisecond, errors.New("disk full"))
	obs.OnBuildComplete(20*time.Millisecond, errors.New("disk full"))
	rec.SetDocumentsWritten("post", 4)

	values := gather(t, reg)
	assert.Equal(t, 1.0, values["mublog_stage_results_total{result=success,stage=load_posts}"])
	assert.Equal(t, 1.0, values["mublog_stage_results_total{result=failed,stage=write_posts}"])
	assert.Equal(t, 1.0, values["mublog_build_outcomes_total{outcome=failed}"])
	assert.Equal(t, 4.0, values["mublog_documents_written{kind=post}"])
	assert.Same(t, reg, rec.Registry())
}

// gather flattens counter and gauge samples into "name{k=v,...}" keys with
// labels in name order.
func gather(t *testing.T, reg *prom.Registry) map[string]float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			key := mf.GetName() + "{" + strings.Join(labels, ",") + "}"
			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[key] = m.GetGauge().GetValue()
			}
		}
	}
	return out
}

func TestNilRecorderIsSafe(t *testing.T) {
	var p *PrometheusRecorder
	p.ObserveStageDuration("s", time.Second)
	p.IncBuildOutcome(BuildOutcomeSuccess)
	NewObserver(nil).OnBuildComplete(time.Second, nil)
}

func TestWriteTextfileAndHandler(t *testing.T) {
	rec := NewPrometheusRecorder(nil)
	rec.IncBuildOutcome(BuildOutcomeSuccess)

	path := filepath.Join(t.TempDir(), "mublog.prom")
	require.NoError(t, WriteTextfile(path, rec.Registry()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `mublog_build_outcomes_total{outcome="success"} 1`)

	srv := httptest.NewServer(HTTPHandler(rec.Registry()))
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
