package render

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/roach88/crimehours/internal/aggregate"
	"github.com/roach88/crimehours/internal/record"
)

const (
	januarySheet = "January"
	chartWidth   = 520
	chartHeight  = 280
)

// Workbook renders the histograms into one XLSX file: a sheet per year with
// a month-by-hour count table and a column chart per month, plus a January
// sheet comparing each year with and without New Year's Day.
type Workbook struct {
	OutDir string
}

// Render writes the workbook and returns its path.
func (w Workbook) Render(fig Figures) ([]string, error) {
	f := excelize.NewFile()
	defer f.Close()

	for _, g := range fig.Grids {
		if err := writeYearSheet(f, g); err != nil {
			return nil, err
		}
	}
	if len(fig.January) > 0 {
		if err := writeJanuarySheet(f, fig.January); err != nil {
			return nil, err
		}
	}

	// Drop the default sheet once another exists.
	if len(f.GetSheetList()) > 1 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("delete default sheet: %w", err)
		}
		f.SetActiveSheet(0)
	}

	path := filepath.Join(w.OutDir, WorkbookFileName)
	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("save workbook: %w", err)
	}
	return []string{path}, nil
}

func writeYearSheet(f *excelize.File, g YearGrid) error {
	sheet := strconv.Itoa(g.Year)
	rows := make([]labeledHistogram, 12)
	for m := range g.Months {
		rows[m] = labeledHistogram{label: monthName(m + 1), hist: g.Months[m]}
	}
	return writeCountSheet(f, sheet, "Month", rows)
}

func writeJanuarySheet(f *excelize.File, sens []aggregate.Sensitivity) error {
	rows := make([]labeledHistogram, 0, 2*len(sens))
	for _, s := range sens {
		rows = append(rows,
			labeledHistogram{label: fmt.Sprintf("January %d", s.Year), hist: s.All},
			labeledHistogram{label: fmt.Sprintf("January %d, Without Jan 1", s.Year), hist: s.WithoutFirstDay},
		)
	}
	return writeCountSheet(f, januarySheet, "Slice", rows)
}

type labeledHistogram struct {
	label string
	hist  aggregate.Histogram
}

// writeCountSheet writes a header row of bucket labels, one row per
// histogram, and a column chart per row to the right of the table.
func writeCountSheet(f *excelize.File, sheet, corner string, rows []labeledHistogram) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	header := make([]any, 0, record.NumHourBuckets+2)
	header = append(header, corner)
	for _, label := range record.HourBucketLabels() {
		header = append(header, label)
	}
	header = append(header, "Total")
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header of %s: %w", sheet, err)
	}

	lastCol, _ := excelize.ColumnNumberToName(record.NumHourBuckets + 1)
	chartCol, _ := excelize.ColumnNumberToName(record.NumHourBuckets + 4)

	for i, r := range rows {
		rowNum := i + 2
		values := make([]any, 0, record.NumHourBuckets+2)
		values = append(values, r.label)
		for _, c := range r.hist {
			values = append(values, c)
		}
		values = append(values, r.hist.Total())

		start, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(sheet, start, &values); err != nil {
			return fmt.Errorf("write row %d of %s: %w", rowNum, sheet, err)
		}

		anchor := fmt.Sprintf("%s%d", chartCol, 1+i*15)
		chart := &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("'%s'!$A$%d", sheet, rowNum),
				Categories: fmt.Sprintf("'%s'!$B$1:$%s$1", sheet, lastCol),
				Values:     fmt.Sprintf("'%s'!$B$%d:$%s$%d", sheet, rowNum, lastCol, rowNum),
			}},
			Title:     []excelize.RichTextRun{{Text: r.label}},
			Legend:    excelize.ChartLegend{Position: "none"},
			Dimension: excelize.ChartDimension{Width: chartWidth, Height: chartHeight},
		}
		if err := f.AddChart(sheet, anchor, chart); err != nil {
			return fmt.Errorf("add chart for %s on %s: %w", r.label, sheet, err)
		}
	}
	return nil
}
