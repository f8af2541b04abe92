package plan

// lookaheadResult scores one candidate production choice for a decision
// day: its immediate effect plus a best-effort projection of every
// later day. All install settlements use the safety buffer.
type lookaheadResult struct {
	immediate        Pair // decision-day shortage per kind
	futureDays       int  // future days with any shortage
	firstFutureLong  int  // project day number, 0 = never
	firstFutureShort int
	futureTotal      Pair // cumulative future shortage per kind
	stockAfter       Pair // stock after the decision day's install
	produced         Pair // resolved decision-day production
	source           ProductionSource
}

// lookahead simulates candidate (nil means "produce nothing") on the
// day at idx, then projects all later days with an independently
// optimised continuation, carrying the same running stock forward.
// It never mutates days. This is a full, non-memoised re-simulation;
// the optimiser pays O(days² × options) for it.
func (p Planner) lookahead(days []CalendarDay, idx int, candidate *ProductionOption, stock Pair) lookaheadResult {
	day := days[idx]
	buf := p.buffer()

	var res lookaheadResult
	if candidate != nil && !day.Rest {
		res.produced = p.effectiveOutput(candidate.Produces, day.Date)
		if res.produced == candidate.Produces {
			res.source = ProductionSource{Kind: SourceOption, OptionID: candidate.ID}
		}
	}

	stock = stock.Add(res.produced)
	installed, _ := settleInstall(day.Requested, stock, buf)
	stock = stock.Sub(installed)
	res.immediate = day.Requested.Sub(installed)
	res.stockAfter = stock

	for i := idx + 1; i < len(days); i++ {
		fd := days[i]
		produced := p.projectFutureDay(fd, stock, buf)

		stock = stock.Add(produced)
		installed, _ := settleInstall(fd.Requested, stock, buf)
		stock = stock.Sub(installed)

		shortage := fd.Requested.Sub(installed)
		if shortage.Long > 0 {
			if res.firstFutureLong == 0 {
				res.firstFutureLong = fd.Day
			}
			res.futureTotal.Long += shortage.Long
		}
		if shortage.Short > 0 {
			if res.firstFutureShort == 0 {
				res.firstFutureShort = fd.Day
			}
			res.futureTotal.Short += shortage.Short
		}
		if shortage.Long > 0 || shortage.Short > 0 {
			res.futureDays++
		}
	}
	return res
}

// projectFutureDay resolves the production of one future day during
// lookahead. Manually fixed days replay their quantities (restrictions
// still zero them out); otherwise every catalogue option plus "produce
// nothing" is tried against the buffered install test and the one
// minimising shortage, then maximising output, wins.
func (p Planner) projectFutureDay(fd CalendarDay, stock Pair, buf int) Pair {
	if fd.Source.Kind == SourceManual {
		return p.effectiveOutput(fd.Produced, fd.Date)
	}
	if fd.Rest || len(p.Options) == 0 {
		return Pair{}
	}

	best := Pair{}
	bestInstalled, _ := settleInstall(fd.Requested, stock, buf)
	bestShort := fd.Requested.Sub(bestInstalled)

	for i := range p.Options {
		produced := p.effectiveOutput(p.Options[i].Produces, fd.Date)
		installed, _ := settleInstall(fd.Requested, stock.Add(produced), buf)
		short := fd.Requested.Sub(installed)

		better := false
		switch {
		case short.Long < bestShort.Long:
			better = true
		case short.Long == bestShort.Long && short.Short < bestShort.Short:
			better = true
		case short.Long == bestShort.Long && short.Short == bestShort.Short:
			if produced.Long > best.Long || (produced.Long == best.Long && produced.Short > best.Short) {
				better = true
			}
		}
		if better {
			best = produced
			bestShort = short
		}
	}
	return best
}

// effectiveOutput zeroes each kind of the declared output that is
// restricted on the given date.
func (p Planner) effectiveOutput(declared Pair, date Date) Pair {
	out := declared
	if Restricted(KindLong, date, p.Restrictions) {
		out.Long = 0
	}
	if Restricted(KindShort, date, p.Restrictions) {
		out.Short = 0
	}
	return out
}
