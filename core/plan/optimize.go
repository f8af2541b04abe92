package plan

import (
	"math"
	"slices"
)

// Planner holds the operator-supplied planning configuration. The zero
// value plans with an empty catalogue, no restrictions, the default
// safety stock and the performance strategy.
type Planner struct {
	Options      []ProductionOption
	Restrictions []Restriction
	SafetyStock  int // lookahead reserve; DefaultSafetyStock when <= 0
	Strategy     Strategy
}

func (p Planner) buffer() int {
	if p.SafetyStock > 0 {
		return p.SafetyStock
	}
	return DefaultSafetyStock
}

// Optimize decides the production of every non-manual day in calendar
// order. Each day is chosen by running a full lookahead simulation per
// candidate option and ranking the results through a fixed cascade of
// comparison rules. The committed stock progression between days is
// unbuffered. The input slice is not mutated; the decided copy is
// returned. Optimize is deterministic: identical inputs yield an
// identical plan.
func (p Planner) Optimize(days []CalendarDay, initial, target Pair) []CalendarDay {
	out := slices.Clone(days)
	stock := initial
	var producedTotal Pair
	var prevSource ProductionSource

	for i := range out {
		d := &out[i]
		switch {
		case d.Rest:
			d.Produced = Pair{}
			d.Source = ProductionSource{}

		case d.Source.Kind == SourceManual:
			d.Produced = p.effectiveOutput(d.Produced, d.Date)
			p.reattachOption(d)

		case len(p.Options) == 0:
			d.Produced = Pair{}
			d.Source = ProductionSource{}

		default:
			best := p.decide(out, i, stock, producedTotal, initial, target, prevSource)
			d.Produced = best.produced
			d.Source = best.source
			p.clamp(d, initial, producedTotal, target)
		}

		producedTotal = producedTotal.Add(d.Produced)
		stock = stock.Add(d.Produced)
		installed, _ := settleInstall(d.Requested, stock, 0)
		stock = stock.Sub(installed)
		prevSource = d.Source
	}
	return out
}

// decide evaluates "produce nothing" plus every non-excluded catalogue
// option for the day at idx and returns the winning lookahead result.
// Candidates are evaluated in catalogue order and a later candidate
// must strictly beat the incumbent to replace it.
func (p Planner) decide(days []CalendarDay, idx int, stock, producedTotal, initial, target Pair, prevSource ProductionSource) lookaheadResult {
	metLong := initial.Long+producedTotal.Long >= target.Long
	metShort := initial.Short+producedTotal.Short >= target.Short

	candidates := []*ProductionOption{nil}
	for i := range p.Options {
		opt := &p.Options[i]
		if metLong && opt.Produces.Long > 0 {
			continue
		}
		if metShort && opt.Produces.Short > 0 {
			continue
		}
		candidates = append(candidates, opt)
	}

	rules := p.rules(prevSource, stock)
	best := p.lookahead(days, idx, candidates[0], stock)
	for _, cand := range candidates[1:] {
		res := p.lookahead(days, idx, cand, stock)
		if compare(res, best, rules) < 0 {
			best = res
		}
	}
	return best
}

// reattachOption re-validates a manual day: if a catalogue option
// declares exactly the day's quantities and neither kind is restricted
// on that date, the day is attributed to that option; otherwise it
// stays manual.
func (p Planner) reattachOption(d *CalendarDay) {
	if Restricted(KindLong, d.Date, p.Restrictions) || Restricted(KindShort, d.Date, p.Restrictions) {
		return
	}
	for i := range p.Options {
		if p.Options[i].Produces == d.Produced {
			d.Source = ProductionSource{Kind: SourceOption, OptionID: p.Options[i].ID}
			return
		}
	}
}

// clamp caps each kind's production at the remaining amount needed to
// reach its target, so cumulative production never overshoots. The
// option reference is cleared when clamping makes the quantities
// diverge from the option's declared output.
func (p Planner) clamp(d *CalendarDay, initial, producedTotal, target Pair) {
	remaining := Pair{
		Long:  max(0, target.Long-initial.Long-producedTotal.Long),
		Short: max(0, target.Short-initial.Short-producedTotal.Short),
	}
	if d.Produced.Long > remaining.Long {
		d.Produced.Long = remaining.Long
	}
	if d.Produced.Short > remaining.Short {
		d.Produced.Short = remaining.Short
	}
	if d.Source.Kind == SourceOption {
		if opt := p.option(d.Source.OptionID); opt == nil || opt.Produces != d.Produced {
			d.Source = ProductionSource{}
		}
	}
}

func (p Planner) option(id string) *ProductionOption {
	for i := range p.Options {
		if p.Options[i].ID == id {
			return &p.Options[i]
		}
	}
	return nil
}

// A rule compares two lookahead results; negative means a is preferred,
// positive means b, zero passes to the next rule.
type rule func(a, b lookaheadResult) int

func compare(a, b lookaheadResult, rules []rule) int {
	for _, r := range rules {
		if c := r(a, b); c != 0 {
			return c
		}
	}
	return 0
}

// rules builds the lexicographic comparator cascade for one decision
// day. globalStock is the pre-decision, unbuffered stock.
func (p Planner) rules(prevSource ProductionSource, globalStock Pair) []rule {
	rs := []rule{
		func(a, b lookaheadResult) int { return a.immediate.Long - b.immediate.Long },
		func(a, b lookaheadResult) int { return a.immediate.Short - b.immediate.Short },
		// Later first-future-shortage days are better; "never" wins.
		func(a, b lookaheadResult) int { return orNever(b.firstFutureLong) - orNever(a.firstFutureLong) },
		func(a, b lookaheadResult) int { return orNever(b.firstFutureShort) - orNever(a.firstFutureShort) },
		func(a, b lookaheadResult) int { return a.futureTotal.Long - b.futureTotal.Long },
		func(a, b lookaheadResult) int { return a.futureTotal.Short - b.futureTotal.Short },
	}
	if p.Strategy == StrategyConsistency && prevSource.Kind == SourceOption {
		rs = append(rs, func(a, b lookaheadResult) int {
			return matches(b.source, prevSource.OptionID) - matches(a.source, prevSource.OptionID)
		})
	}
	return append(rs, p.stockHealth(globalStock))
}

// stockHealth is the final tie-break, judged on post-decision stock.
// When exactly one kind's pre-decision stock sits at or below the
// safety reserve, the emergency rule alone decides: produce more of the
// scarce kind, then less of the other to conserve capacity.
func (p Planner) stockHealth(globalStock Pair) rule {
	buf := p.buffer()
	return func(a, b lookaheadResult) int {
		longLow := globalStock.Long <= buf
		shortLow := globalStock.Short <= buf
		if longLow != shortLow {
			scarce, other := KindLong, KindShort
			if shortLow {
				scarce, other = KindShort, KindLong
			}
			if c := b.produced.Get(scarce) - a.produced.Get(scarce); c != 0 {
				return c
			}
			return a.produced.Get(other) - b.produced.Get(other)
		}

		aDips := a.stockAfter.Long < buf || a.stockAfter.Short < buf
		bDips := b.stockAfter.Long < buf || b.stockAfter.Short < buf
		if aDips != bDips {
			if aDips {
				return 1
			}
			return -1
		}
		if c := b.stockAfter.Min() - a.stockAfter.Min(); c != 0 {
			return c
		}
		return b.stockAfter.Sum() - a.stockAfter.Sum()
	}
}

// orNever maps the 0-as-unset first-shortage sentinel to "infinitely
// late" so that a candidate with no future shortage always wins rules
// three and four.
func orNever(day int) int {
	if day == 0 {
		return math.MaxInt32
	}
	return day
}

func matches(s ProductionSource, optionID string) int {
	if s.Kind == SourceOption && s.OptionID == optionID {
		return 1
	}
	return 0
}
