package plan

import (
	"time"

	"github.com/google/uuid"
)

// GenerateCalendarDays builds the project calendar, one CalendarDay per
// date from projectStart through projectEnd inclusive. Sundays are rest
// days. Installation demand is zero on rest days, before installStart
// and inside blackout intervals; Saturdays use rateSaturday, all other
// working days rateWeekday. Production fields start at zero with an
// unset source. An end date before the start date yields an empty
// calendar rather than an error.
func GenerateCalendarDays(projectStart, projectEnd, installStart Date, rateWeekday, rateSaturday int, blackouts []Blackout) []CalendarDay {
	if projectEnd.Before(projectStart.Time) {
		return nil
	}
	var days []CalendarDay
	for d, i := projectStart, 1; !d.After(projectEnd.Time); d, i = d.AddDays(1), i+1 {
		wd := d.Weekday()
		rest := wd == time.Sunday

		rate := 0
		if !rest && !d.Before(installStart.Time) && !blackedOut(d, blackouts) {
			if wd == time.Saturday {
				rate = rateSaturday
			} else {
				rate = rateWeekday
			}
		}

		days = append(days, CalendarDay{
			ID:        uuid.NewString(),
			Day:       i,
			Date:      d,
			Weekday:   wd.String()[:3],
			Rest:      rest,
			Requested: Pair{Long: rate, Short: rate},
		})
	}
	return days
}

func blackedOut(d Date, blackouts []Blackout) bool {
	for _, b := range blackouts {
		if d.Within(b.From, b.To) {
			return true
		}
	}
	return false
}
