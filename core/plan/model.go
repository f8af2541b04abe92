package plan

import (
	"time"

	"gopkg.in/yaml.v3"
)

// ItemKind identifies one of the two stop-end variants. Installation
// always consumes one of each, so the two kinds move in lockstep.
type ItemKind string

const (
	KindLong  ItemKind = "long"
	KindShort ItemKind = "short"
)

// Pair holds one integer quantity per item kind. It is used for stock
// levels, produced quantities, install requests and shortages alike.
type Pair struct {
	Long  int `json:"long" yaml:"long"`
	Short int `json:"short" yaml:"short"`
}

// Add returns the component-wise sum of p and q.
func (p Pair) Add(q Pair) Pair { return Pair{p.Long + q.Long, p.Short + q.Short} }

// Sub returns the component-wise difference of p and q.
func (p Pair) Sub(q Pair) Pair { return Pair{p.Long - q.Long, p.Short - q.Short} }

// Min returns the smaller of the two components.
func (p Pair) Min() int {
	if p.Long < p.Short {
		return p.Long
	}
	return p.Short
}

// Sum returns the total of both components.
func (p Pair) Sum() int { return p.Long + p.Short }

// Get returns the component for the given kind.
func (p Pair) Get(k ItemKind) int {
	if k == KindLong {
		return p.Long
	}
	return p.Short
}

// Date is a calendar date at day granularity, normalised to midnight UTC.
// It marshals to and from "2006-01-02" in JSON.
type Date struct{ time.Time }

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to day granularity in UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, m, d)
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date { return Date{d.Time.AddDate(0, 0, n)} }

// Within reports whether d falls inside the closed interval [from, to].
func (d Date) Within(from, to Date) bool {
	return !d.Before(from.Time) && !d.After(to.Time)
}

const dateLayout = "2006-01-02"

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		// Accept full timestamps for compatibility with stored payloads.
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
	}
	*d = DateOf(t)
	return nil
}

func (d Date) MarshalYAML() (any, error) {
	return d.Format(dateLayout), nil
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	*d = DateOf(t)
	return nil
}

// ProductionOption is a named catalogue entry describing the fixed daily
// output of one production method. Options are operator configuration;
// the engine never edits the catalogue.
type ProductionOption struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Produces Pair   `json:"produces" yaml:"produces"`
}

// Restriction blocks production of one kind during a closed date interval.
type Restriction struct {
	Kind   ItemKind `json:"kind" yaml:"kind"`
	From   Date     `json:"from" yaml:"from"`
	To     Date     `json:"to" yaml:"to"`
	Reason string   `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Blackout forces installation demand to zero during a closed date
// interval. Blackouts are applied while generating the calendar, not
// inside the engine.
type Blackout struct {
	From   Date   `json:"from" yaml:"from"`
	To     Date   `json:"to" yaml:"to"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// SourceKind tags how a day's produced quantities were decided.
type SourceKind string

const (
	// SourceUnset means the optimiser is free to decide the day.
	SourceUnset SourceKind = ""
	// SourceOption means the quantities come from a catalogue option.
	SourceOption SourceKind = "option"
	// SourceManual means an operator fixed the quantities by hand.
	// A manual day is replayed as-is by the optimiser, even when its
	// quantities are zero.
	SourceManual SourceKind = "manual"
)

// ProductionSource records the provenance of a day's production. The
// zero value is SourceUnset.
type ProductionSource struct {
	Kind     SourceKind `json:"kind,omitempty"`
	OptionID string     `json:"option_id,omitempty"`
}

// CalendarDay is one day of the project calendar. Position fields (Day,
// Date, Weekday, Rest, Requested) are fixed at generation time; the
// optimiser mutates only Produced and Source.
type CalendarDay struct {
	ID        string           `json:"id"`
	Day       int              `json:"day"` // 1-based project day number
	Date      Date             `json:"date"`
	Weekday   string           `json:"weekday"`
	Rest      bool             `json:"rest"` // Sunday: no production, no installation
	Requested Pair             `json:"requested"`
	Produced  Pair             `json:"produced"`
	Source    ProductionSource `json:"source"`
}

// LedgerEntry is a CalendarDay augmented with the stock movements the
// forward simulator computed for it.
type LedgerEntry struct {
	CalendarDay
	Opening   Pair `json:"opening"`
	Installed Pair `json:"installed"`
	Closing   Pair `json:"closing"`
	Shortage  Pair `json:"shortage"`
}

// Summary aggregates a simulation run against the project targets.
type Summary struct {
	TotalInstalled  Pair `json:"total_installed"`
	TargetShortfall Pair `json:"target_shortfall"`
	MeetsLong       bool `json:"meets_long"`
	MeetsShort      bool `json:"meets_short"`
}

// ShortageMark points at the first day a kind ran short.
type ShortageMark struct {
	Day  int  `json:"day"`
	Date Date `json:"date"`
}

// FirstShortage holds the first shortage per kind. A nil entry means
// the kind never ran short.
type FirstShortage struct {
	Long  *ShortageMark `json:"long,omitempty"`
	Short *ShortageMark `json:"short,omitempty"`
}

// Strategy selects the optimisation philosophy.
type Strategy string

const (
	// StrategyPerformance optimises stock health alone.
	StrategyPerformance Strategy = "performance"
	// StrategyConsistency additionally prefers repeating the previous
	// day's production option when shortage metrics tie.
	StrategyConsistency Strategy = "consistency"
)
