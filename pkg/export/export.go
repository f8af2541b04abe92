package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
)

// WriteJSON writes the full plan bundle to w in JSON format.
func WriteJSON(w io.Writer, p Plan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// WriteCSV writes the day-by-day ledger to w in CSV format.
func WriteCSV(w io.Writer, p Plan) error {
	cw := csv.NewWriter(w)
	header := []string{
		"day", "date", "weekday", "rest", "source", "option_id",
		"produced_long", "produced_short",
		"requested_long", "requested_short",
		"installed_long", "installed_short",
		"closing_long", "closing_short",
		"shortage_long", "shortage_short",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, e := range p.Ledger {
		rec := []string{
			strconv.Itoa(e.Day),
			e.Date.Format("2006-01-02"),
			e.Weekday,
			strconv.FormatBool(e.Rest),
			string(e.Source.Kind),
			e.Source.OptionID,
			strconv.Itoa(e.Produced.Long),
			strconv.Itoa(e.Produced.Short),
			strconv.Itoa(e.Requested.Long),
			strconv.Itoa(e.Requested.Short),
			strconv.Itoa(e.Installed.Long),
			strconv.Itoa(e.Installed.Short),
			strconv.Itoa(e.Closing.Long),
			strconv.Itoa(e.Closing.Short),
			strconv.Itoa(e.Shortage.Long),
			strconv.Itoa(e.Shortage.Short),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
