package plan

import (
	"strings"
	"testing"
)

func validProject() Project {
	return Project{
		Name:              "Dock wall",
		ProjectStart:      NewDate(2026, 3, 2),
		ProjectEnd:        NewDate(2026, 3, 7),
		InstallationStart: NewDate(2026, 3, 3),
		RateWeekday:       2,
		RateSaturday:      1,
		InitialStock:      Pair{4, 4},
		Target:            Pair{10, 10},
		Options:           []ProductionOption{stdOption},
	}
}

func TestProjectValidate(t *testing.T) {
	if err := validProject().Validate(); err != nil {
		t.Fatalf("valid project rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Project)
		want   string
	}{
		{"end before start", func(p *Project) { p.ProjectEnd = NewDate(2026, 2, 1) }, "before start"},
		{"missing dates", func(p *Project) { p.ProjectStart = Date{}; p.ProjectEnd = Date{} }, "required"},
		{"negative rate", func(p *Project) { p.RateWeekday = -1 }, "non-negative"},
		{"negative target", func(p *Project) { p.Target.Short = -2 }, "non-negative"},
		{"bad strategy", func(p *Project) { p.Strategy = "fastest" }, "unknown strategy"},
		{"option without id", func(p *Project) { p.Options[0].ID = "" }, "no id"},
		{"duplicate option id", func(p *Project) { p.Options = append(p.Options, p.Options[0]) }, "duplicate"},
		{"negative output", func(p *Project) { p.Options[0].Produces.Long = -1 }, "negative output"},
		{"bad restriction kind", func(p *Project) {
			p.Restrictions = []Restriction{{Kind: "medium", From: NewDate(2026, 3, 2), To: NewDate(2026, 3, 3)}}
		}, "unknown kind"},
	}
	for _, c := range cases {
		p := validProject()
		c.mutate(&p)
		err := p.Validate()
		if err == nil {
			t.Errorf("%s: expected error", c.name)
			continue
		}
		if !strings.Contains(err.Error(), c.want) {
			t.Errorf("%s: error %q does not mention %q", c.name, err, c.want)
		}
	}
}

func TestProjectRun(t *testing.T) {
	p := validProject()
	days, ledger, summary, _ := p.Run()
	if len(days) != 6 {
		t.Fatalf("calendar has %d days", len(days))
	}
	if len(ledger) == 0 || len(ledger) > len(days) {
		t.Fatalf("ledger has %d entries", len(ledger))
	}
	if summary.TotalInstalled.Long != summary.TotalInstalled.Short {
		t.Fatalf("sets must install both kinds equally: %+v", summary.TotalInstalled)
	}
}

func TestProjectDefaultsStrategy(t *testing.T) {
	p := validProject()
	if got := p.Planner().Strategy; got != StrategyPerformance {
		t.Fatalf("default strategy %q, want performance", got)
	}
}
