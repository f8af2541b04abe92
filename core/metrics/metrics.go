// Package metrics defines the instrumentation interface the planning
// service reports through. Implementations live under infra/metrics.
package metrics

import "time"

// Config holds the metrics exposure settings.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
}

// PlanRun describes one optimizer + simulator invocation.
type PlanRun struct {
	Project      string
	Strategy     string
	Days         int
	ShortageDays int
	MeetsTargets bool
	Duration     time.Duration
}

// Sink records planning activity.
type Sink interface {
	RecordPlanRun(PlanRun) error
}

// NopSink discards all records.
type NopSink struct{}

func (NopSink) RecordPlanRun(PlanRun) error { return nil }
