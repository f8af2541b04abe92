package plan

import "testing"

func TestGenerateCalendarDays(t *testing.T) {
	// 2026-03-01 is a Sunday; two full weeks through Saturday the 14th.
	start := NewDate(2026, 3, 1)
	end := NewDate(2026, 3, 14)
	installStart := NewDate(2026, 3, 4)
	blackouts := []Blackout{{From: NewDate(2026, 3, 6), To: NewDate(2026, 3, 7)}}

	days := GenerateCalendarDays(start, end, installStart, 2, 1, blackouts)
	if len(days) != 14 {
		t.Fatalf("got %d days, want 14", len(days))
	}

	for i, d := range days {
		if d.Day != i+1 {
			t.Fatalf("day %d numbered %d", i, d.Day)
		}
		if d.Produced != (Pair{}) || d.Source.Kind != SourceUnset {
			t.Fatalf("day %d must start undecided", d.Day)
		}
		if d.Requested.Long != d.Requested.Short {
			t.Fatalf("day %d demand must be in sets", d.Day)
		}
	}

	wantDemand := map[int]int{
		1:  0, // Sunday, rest
		2:  0, // before installation start
		3:  0,
		4:  2, // first install day
		5:  2,
		6:  0, // blackout
		7:  0, // blackout Saturday
		8:  0, // Sunday
		9:  2,
		10: 2,
		11: 2,
		12: 2,
		13: 2,
		14: 1, // Saturday rate
	}
	for day, want := range wantDemand {
		if got := days[day-1].Requested.Long; got != want {
			t.Errorf("day %d (%s): demand %d, want %d", day, days[day-1].Weekday, got, want)
		}
	}

	if !days[0].Rest || days[0].Weekday != "Sun" {
		t.Fatalf("day 1 should be a Sunday rest day, got %q rest=%v", days[0].Weekday, days[0].Rest)
	}
	if days[7].Rest != true {
		t.Fatalf("day 8 should be a rest day")
	}
	if days[13].Weekday != "Sat" || days[13].Rest {
		t.Fatalf("day 14 should be a working Saturday")
	}
	if days[0].ID == "" || days[0].ID == days[1].ID {
		t.Fatalf("days need distinct ids")
	}
}

func TestGenerateCalendarDaysInvalidRange(t *testing.T) {
	// End before start is a contract violation; the generator answers
	// with an empty calendar instead of failing.
	if days := GenerateCalendarDays(NewDate(2026, 3, 10), NewDate(2026, 3, 1), NewDate(2026, 3, 1), 2, 1, nil); len(days) != 0 {
		t.Fatalf("expected empty calendar, got %d days", len(days))
	}
}

func TestGenerateCalendarDaysSingleDay(t *testing.T) {
	d := NewDate(2026, 3, 2) // Monday
	days := GenerateCalendarDays(d, d, d, 3, 1, nil)
	if len(days) != 1 {
		t.Fatalf("got %d days", len(days))
	}
	if days[0].Requested != (Pair{3, 3}) {
		t.Fatalf("demand %v, want {3 3}", days[0].Requested)
	}
}
