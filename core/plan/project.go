package plan

import (
	"fmt"
)

// Project bundles every operator-supplied input of one planning run:
// the calendar parameters, stocks and targets, the option catalogue,
// restriction and blackout windows and the optimisation strategy.
type Project struct {
	Name              string             `json:"name" yaml:"name"`
	ProjectStart      Date               `json:"project_start" yaml:"project_start"`
	ProjectEnd        Date               `json:"project_end" yaml:"project_end"`
	InstallationStart Date               `json:"installation_start" yaml:"installation_start"`
	RateWeekday       int                `json:"rate_weekday" yaml:"rate_weekday"`
	RateSaturday      int                `json:"rate_saturday" yaml:"rate_saturday"`
	InitialStock      Pair               `json:"initial_stock" yaml:"initial_stock"`
	Target            Pair               `json:"target" yaml:"target"`
	Options           []ProductionOption `json:"options" yaml:"options"`
	Restrictions      []Restriction      `json:"restrictions,omitempty" yaml:"restrictions,omitempty"`
	Blackouts         []Blackout         `json:"blackouts,omitempty" yaml:"blackouts,omitempty"`
	Strategy          Strategy           `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	SafetyStock       int                `json:"safety_stock,omitempty" yaml:"safety_stock,omitempty"`
}

// Validate checks the project for contract violations the engine does
// not guard against itself.
func (p Project) Validate() error {
	if p.ProjectStart.IsZero() || p.ProjectEnd.IsZero() {
		return fmt.Errorf("project start and end dates are required")
	}
	if p.ProjectEnd.Before(p.ProjectStart.Time) {
		return fmt.Errorf("project end %s before start %s", p.ProjectEnd.Format(dateLayout), p.ProjectStart.Format(dateLayout))
	}
	if p.RateWeekday < 0 || p.RateSaturday < 0 {
		return fmt.Errorf("installation rates must be non-negative")
	}
	if p.InitialStock.Long < 0 || p.InitialStock.Short < 0 || p.Target.Long < 0 || p.Target.Short < 0 {
		return fmt.Errorf("stocks and targets must be non-negative")
	}
	switch p.Strategy {
	case "", StrategyPerformance, StrategyConsistency:
	default:
		return fmt.Errorf("unknown strategy %q", p.Strategy)
	}
	seen := make(map[string]struct{}, len(p.Options))
	for _, o := range p.Options {
		if o.ID == "" {
			return fmt.Errorf("production option %q has no id", o.Name)
		}
		if _, dup := seen[o.ID]; dup {
			return fmt.Errorf("duplicate production option id %q", o.ID)
		}
		seen[o.ID] = struct{}{}
		if o.Produces.Long < 0 || o.Produces.Short < 0 {
			return fmt.Errorf("option %q declares negative output", o.Name)
		}
	}
	for _, r := range p.Restrictions {
		if r.Kind != KindLong && r.Kind != KindShort {
			return fmt.Errorf("restriction has unknown kind %q", r.Kind)
		}
	}
	return nil
}

// Days generates the project calendar from the date parameters.
func (p Project) Days() []CalendarDay {
	return GenerateCalendarDays(p.ProjectStart, p.ProjectEnd, p.InstallationStart, p.RateWeekday, p.RateSaturday, p.Blackouts)
}

// Planner builds the planner configured for this project.
func (p Project) Planner() Planner {
	strategy := p.Strategy
	if strategy == "" {
		strategy = StrategyPerformance
	}
	return Planner{
		Options:      p.Options,
		Restrictions: p.Restrictions,
		SafetyStock:  p.SafetyStock,
		Strategy:     strategy,
	}
}

// Run optimises the project's calendar and replays the decided plan
// once without the safety buffer, returning the user-facing outputs.
func (p Project) Run() ([]CalendarDay, []LedgerEntry, Summary, FirstShortage) {
	days := p.Planner().Optimize(p.Days(), p.InitialStock, p.Target)
	ledger, summary, first := Simulate(days, p.InitialStock, p.Target)
	return days, ledger, summary, first
}
