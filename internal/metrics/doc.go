// Package metrics records build and stage metrics.
//
// Components receive a Recorder and default to NoopRecorder, so metrics cost
// nothing unless a PrometheusRecorder is injected:
//
//	reg := prometheus.NewRegistry()
//	recorder := metrics.NewPrometheusRecorder(reg)
//	svc := build.NewBuildService().WithRecorder(recorder)
//
// Observer adapts a Recorder to pipeline callbacks. The Prometheus registry can
// be exported once per build to a node-exporter textfile (WriteTextfile) or
// served over HTTP during preview (HTTPHandler).
package metrics
