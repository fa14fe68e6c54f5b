package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once           sync.Once
	stageDuration  *prom.HistogramVec
	buildDuration  prom.Histogram
	stageResults   *prom.CounterVec
	buildOutcome   *prom.CounterVec
	postCount      prom.Gauge
	routeCount     prom.Gauge
	artifactWrites *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "blogbuilder",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "blogbuilder",
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		})
		pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "blogbuilder",
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "blogbuilder",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"})
		pr.postCount = prom.NewGauge(prom.GaugeOpts{
			Namespace: "blogbuilder",
			Name:      "posts",
			Help:      "Number of posts in the last completed build",
		})
		pr.routeCount = prom.NewGauge(prom.GaugeOpts{
			Namespace: "blogbuilder",
			Name:      "routes",
			Help:      "Number of routes emitted by the last completed build",
		})
		pr.artifactWrites = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "blogbuilder",
			Name:      "artifact_writes_total",
			Help:      "Artifact write operations by result",
		}, []string{"result"})
		reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome, pr.postCount, pr.routeCount, pr.artifactWrites)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) SetPostCount(n int) {
	if p == nil || p.postCount == nil {
		return
	}
	p.postCount.Set(float64(n))
}

func (p *PrometheusRecorder) SetRouteCount(n int) {
	if p == nil || p.routeCount == nil {
		return
	}
	p.routeCount.Set(float64(n))
}

func (p *PrometheusRecorder) IncArtifactWrite(skipped bool) {
	if p == nil || p.artifactWrites == nil {
		return
	}
	res := "written"
	if skipped {
		res = "skipped"
	}
	p.artifactWrites.WithLabelValues(res).Inc()
}
