package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF writes a printable one-table rendition of the plan, the
// kind site managers pin up in the cabin.
func WritePDF(w io.Writer, p Plan) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(p.Project, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	title := p.Project
	if title == "" {
		title = "Production plan"
	}
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Strategy: %s", p.Strategy), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf(
		"Installed %d long / %d short, shortfall %d / %d",
		p.Summary.TotalInstalled.Long, p.Summary.TotalInstalled.Short,
		p.Summary.TargetShortfall.Long, p.Summary.TargetShortfall.Short,
	), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	headers := []string{
		"Day", "Date", "Wd", "Source",
		"Prod L", "Prod S", "Req L", "Req S",
		"Inst L", "Inst S", "Close L", "Close S",
		"Short L", "Short S",
	}
	widths := []float64{12, 24, 12, 30, 17, 17, 17, 17, 17, 17, 18, 18, 17, 17}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, e := range p.Ledger {
		source := string(e.Source.Kind)
		if e.Source.OptionID != "" {
			source = e.Source.OptionID
		}
		if e.Rest {
			source = "rest"
		}
		shortage := e.Shortage.Long > 0 || e.Shortage.Short > 0
		if shortage {
			pdf.SetFillColor(250, 210, 210)
		}
		cells := []string{
			fmt.Sprint(e.Day),
			e.Date.Format("2006-01-02"),
			e.Weekday,
			source,
			fmt.Sprint(e.Produced.Long), fmt.Sprint(e.Produced.Short),
			fmt.Sprint(e.Requested.Long), fmt.Sprint(e.Requested.Short),
			fmt.Sprint(e.Installed.Long), fmt.Sprint(e.Installed.Short),
			fmt.Sprint(e.Closing.Long), fmt.Sprint(e.Closing.Short),
			fmt.Sprint(e.Shortage.Long), fmt.Sprint(e.Shortage.Short),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 5, c, "1", 0, "C", shortage, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
