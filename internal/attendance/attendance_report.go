package attendance

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

type timesheet struct {
	Company  string
	DateFrom string
	DateTo   string
	Zone     string
	Entries  []TimeEntryResponse
}

func renderTimesheet(ts timesheet) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Timesheet", true).
		WithAuthor(ts.Company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(timesheetHeader(ts))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(timesheetColumns())
	for _, e := range ts.Entries {
		m.AddRows(timesheetEntry(e))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(timesheetTotal(ts.Entries))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate timesheet: %w", err)
	}
	return doc.GetBytes(), nil
}

func timesheetHeader(ts timesheet) core.Row {
	period := "All dates"
	switch {
	case ts.DateFrom != "" && ts.DateTo != "":
		period = ts.DateFrom + " to " + ts.DateTo
	case ts.DateFrom != "":
		period = "From " + ts.DateFrom
	case ts.DateTo != "":
		period = "Until " + ts.DateTo
	}

	return row.New(16).Add(
		col.New(8).Add(
			text.New(ts.Company, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Timesheet", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(period, props.Text{Size: 9, Align: align.Right, Top: 2}),
			text.New("Zone: "+ts.Zone, props.Text{Size: 8, Align: align.Right, Top: 9, Color: colorGray}),
		),
	)
}

func timesheetColumns() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Date", 2, align.Left),
		h("Employee", 3, align.Left),
		h("Number", 2, align.Left),
		h("In", 1, align.Center),
		h("Out", 1, align.Center),
		h("Hours", 1, align.Right),
		h("Status", 2, align.Right),
	)
}

func timesheetEntry(e TimeEntryResponse) core.Row {
	cell := func(value string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1}))
	}

	out, hours := "-", "-"
	if e.CheckOut != nil {
		out = clock(*e.CheckOut)
	}
	if e.HoursWorked != nil {
		hours = decimal.NewFromFloat(*e.HoursWorked).StringFixed(2)
	}
	status := e.Status
	if e.AutoClosed {
		status += " (auto)"
	}

	return row.New(6).Add(
		cell(e.Date, 2, align.Left),
		cell(e.EmployeeName, 3, align.Left),
		cell(e.EmployeeNumber, 2, align.Left),
		cell(clock(e.CheckIn), 1, align.Center),
		cell(out, 1, align.Center),
		cell(hours, 1, align.Right),
		cell(status, 2, align.Right),
	)
}

func timesheetTotal(entries []TimeEntryResponse) core.Row {
	total := decimal.Zero
	for _, e := range entries {
		if e.HoursWorked != nil {
			total = total.Add(decimal.NewFromFloat(*e.HoursWorked))
		}
	}
	return row.New(8).Add(
		col.New(8).Add(text.New(fmt.Sprintf("%d entries", len(entries)), props.Text{
			Size: 8, Top: 2, Color: colorGray,
		})),
		col.New(4).Add(text.New("Total hours: "+total.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
		})),
	)
}

// clock turns an RFC3339 timestamp into HH:MM in its own offset.
func clock(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Format("15:04")
}
