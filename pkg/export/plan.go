// Package export renders a computed production plan in the formats the
// API and CLI hand out: JSON, CSV, XLSX and a printable PDF.
package export

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sitecast/stopend/core/plan"
)

// Plan bundles everything one planning run produced.
type Plan struct {
	Project  string             `json:"project"`
	Strategy plan.Strategy      `json:"strategy"`
	Days     []plan.CalendarDay `json:"days"`
	Ledger   []plan.LedgerEntry `json:"ledger"`
	Summary  plan.Summary       `json:"summary"`
	First    plan.FirstShortage `json:"first_shortage"`
	Stats    Stats              `json:"stats"`
}

// Stats summarises how the closing stock behaved over the plan, per
// kind. MinClosing at zero means the stock ran dry at least once.
type Stats struct {
	MeanClosingLong    float64 `json:"mean_closing_long"`
	MeanClosingShort   float64 `json:"mean_closing_short"`
	StddevClosingLong  float64 `json:"stddev_closing_long"`
	StddevClosingShort float64 `json:"stddev_closing_short"`
	MinClosingLong     float64 `json:"min_closing_long"`
	MinClosingShort    float64 `json:"min_closing_short"`
}

// BuildPlan optimises and simulates the project and collects the
// outputs into an exportable bundle.
func BuildPlan(p *plan.Project) Plan {
	days, ledger, summary, first := p.Run()
	strategy := p.Strategy
	if strategy == "" {
		strategy = plan.StrategyPerformance
	}
	return Plan{
		Project:  p.Name,
		Strategy: strategy,
		Days:     days,
		Ledger:   ledger,
		Summary:  summary,
		First:    first,
		Stats:    ComputeStats(ledger),
	}
}

// ComputeStats derives closing-stock statistics from the ledger.
func ComputeStats(ledger []plan.LedgerEntry) Stats {
	if len(ledger) == 0 {
		return Stats{}
	}
	long := make([]float64, len(ledger))
	short := make([]float64, len(ledger))
	for i, e := range ledger {
		long[i] = float64(e.Closing.Long)
		short[i] = float64(e.Closing.Short)
	}
	s := Stats{
		MeanClosingLong:  stat.Mean(long, nil),
		MeanClosingShort: stat.Mean(short, nil),
		MinClosingLong:   floats.Min(long),
		MinClosingShort:  floats.Min(short),
	}
	// StdDev is undefined for a single sample; keep it at zero so the
	// stats always serialise.
	if len(ledger) > 1 {
		s.StddevClosingLong = stat.StdDev(long, nil)
		s.StddevClosingShort = stat.StdDev(short, nil)
	}
	return s
}
