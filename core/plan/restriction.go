package plan

// Restricted reports whether production of kind is blocked on date by
// any of the given restrictions. Interval bounds are inclusive.
func Restricted(kind ItemKind, date Date, restrictions []Restriction) bool {
	for _, r := range restrictions {
		if r.Kind != kind {
			continue
		}
		if date.Within(r.From, r.To) {
			return true
		}
	}
	return false
}
