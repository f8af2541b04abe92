package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/sitecast/stopend/core/metrics"
)

// PromSink records planning runs in Prometheus metrics.
type PromSink struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	shortage prometheus.Gauge
}

// NewPromSink registers planner metrics on the default Prometheus
// registerer. The metrics server is started separately.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_runs_total",
		Help: "Total number of plan optimisation runs",
	}, []string{"strategy", "meets_targets"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planner_run_seconds",
		Help:    "Wall time of one optimisation plus simulation run",
		Buckets: prometheus.DefBuckets,
	}, []string{"strategy"})
	shortage := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "planner_last_shortage_days",
		Help: "Days with any shortage in the most recent run",
	})

	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(shortage); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			shortage = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{runs: runs, duration: duration, shortage: shortage}, nil
}

// RecordPlanRun updates the counters for one planning run.
func (s *PromSink) RecordPlanRun(r coremetrics.PlanRun) error {
	s.runs.WithLabelValues(r.Strategy, strconv.FormatBool(r.MeetsTargets)).Inc()
	s.duration.WithLabelValues(r.Strategy).Observe(r.Duration.Seconds())
	s.shortage.Set(float64(r.ShortageDays))
	return nil
}
