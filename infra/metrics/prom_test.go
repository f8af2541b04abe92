package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/sitecast/stopend/core/metrics"
)

func TestPromSinkRecordsRuns(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("sink: %v", err)
	}
	err = sink.RecordPlanRun(coremetrics.PlanRun{
		Project:      "quay wall",
		Strategy:     "performance",
		Days:         30,
		ShortageDays: 2,
		MeetsTargets: true,
		Duration:     50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	for _, want := range []string{"planner_runs_total", "planner_run_seconds", "planner_last_shortage_days"} {
		if !names[want] {
			t.Fatalf("metric %s not registered (have %v)", want, names)
		}
	}
}

func TestPromSinkDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("second registration should reuse collectors: %v", err)
	}
}
