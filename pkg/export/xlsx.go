package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const planSheet = "Plan"

// WriteXLSX writes the plan as a spreadsheet with the ledger on one
// sheet and the run summary on another.
func WriteXLSX(w io.Writer, p Plan) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", planSheet); err != nil {
		return err
	}

	header := []any{
		"Day", "Date", "Weekday", "Rest", "Source", "Option",
		"Produced L", "Produced S",
		"Requested L", "Requested S",
		"Installed L", "Installed S",
		"Closing L", "Closing S",
		"Shortage L", "Shortage S",
	}
	if err := setRow(f, planSheet, 1, header); err != nil {
		return err
	}
	for i, e := range p.Ledger {
		row := []any{
			e.Day, e.Date.Format("2006-01-02"), e.Weekday, e.Rest,
			string(e.Source.Kind), e.Source.OptionID,
			e.Produced.Long, e.Produced.Short,
			e.Requested.Long, e.Requested.Short,
			e.Installed.Long, e.Installed.Short,
			e.Closing.Long, e.Closing.Short,
			e.Shortage.Long, e.Shortage.Short,
		}
		if err := setRow(f, planSheet, i+2, row); err != nil {
			return err
		}
	}

	summarySheet := "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	rows := [][]any{
		{"Project", p.Project},
		{"Strategy", string(p.Strategy)},
		{"Installed long", p.Summary.TotalInstalled.Long},
		{"Installed short", p.Summary.TotalInstalled.Short},
		{"Shortfall long", p.Summary.TargetShortfall.Long},
		{"Shortfall short", p.Summary.TargetShortfall.Short},
		{"Meets long target", p.Summary.MeetsLong},
		{"Meets short target", p.Summary.MeetsShort},
		{"Mean closing long", p.Stats.MeanClosingLong},
		{"Mean closing short", p.Stats.MeanClosingShort},
		{"Min closing long", p.Stats.MinClosingLong},
		{"Min closing short", p.Stats.MinClosingShort},
	}
	if p.First.Long != nil {
		rows = append(rows, []any{"First long shortage", fmt.Sprintf("day %d (%s)", p.First.Long.Day, p.First.Long.Date.Format("2006-01-02"))})
	}
	if p.First.Short != nil {
		rows = append(rows, []any{"First short shortage", fmt.Sprintf("day %d (%s)", p.First.Short.Day, p.First.Short.Date.Format("2006-01-02"))})
	}
	for i, row := range rows {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
