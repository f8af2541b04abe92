package plan

// Simulate replays a fully decided schedule in calendar order and
// returns the day-by-day ledger together with summary and first
// shortage statistics. The input days are not mutated. No safety
// buffer is applied: this is the committed, real-world progression.
//
// The loop stops early once both cumulative install totals have
// reached their targets; remaining days are not simulated or recorded.
// An empty schedule yields an empty ledger and a zero summary.
func Simulate(days []CalendarDay, initial, target Pair) ([]LedgerEntry, Summary, FirstShortage) {
	ledger := make([]LedgerEntry, 0, len(days))
	stock := initial
	var installed Pair
	var first FirstShortage

	for _, d := range days {
		if installed.Long >= target.Long && installed.Short >= target.Short {
			break
		}

		opening := stock
		stock = stock.Add(d.Produced)
		dayInstalled, _ := settleInstall(d.Requested, stock, 0)
		stock = stock.Sub(dayInstalled)
		shortage := d.Requested.Sub(dayInstalled)

		installed = installed.Add(dayInstalled)
		if shortage.Long > 0 && first.Long == nil {
			first.Long = &ShortageMark{Day: d.Day, Date: d.Date}
		}
		if shortage.Short > 0 && first.Short == nil {
			first.Short = &ShortageMark{Day: d.Day, Date: d.Date}
		}

		ledger = append(ledger, LedgerEntry{
			CalendarDay: d,
			Opening:     opening,
			Installed:   dayInstalled,
			Closing:     stock,
			Shortage:    shortage,
		})
	}

	summary := Summary{
		TotalInstalled: installed,
		TargetShortfall: Pair{
			Long:  max(0, target.Long-installed.Long),
			Short: max(0, target.Short-installed.Short),
		},
		MeetsLong:  installed.Long >= target.Long,
		MeetsShort: installed.Short >= target.Short,
	}
	return ledger, summary, first
}
