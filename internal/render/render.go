// Package render turns violent-by-hour histograms into files.
//
// Renderers only see aggregate.Histogram values, never incident records.
// Output file names are fixed by the grouping key:
//
//	crime-by-month-hour-{year}.png   one 4x3 grid of monthly panels per year
//	crime-january-sensitivity.png    January with and without Jan 1, per year
//	crime-by-month-hour.xlsx         the same counts with native column charts
package render

import (
	"fmt"
	"time"

	"github.com/roach88/crimehours/internal/aggregate"
	"github.com/roach88/crimehours/internal/record"
)

// YearGrid holds the monthly histograms of one year.
type YearGrid struct {
	Year   int
	Months [12]aggregate.Histogram
}

// Figures is everything the renderers draw.
type Figures struct {
	Grids   []YearGrid
	January []aggregate.Sensitivity
}

// Collect aggregates incidents for years.
func Collect(incidents []record.Incident, years []int) Figures {
	fig := Figures{
		Grids:   make([]YearGrid, len(years)),
		January: aggregate.JanuarySensitivity(incidents, years),
	}
	for i, y := range years {
		fig.Grids[i] = YearGrid{Year: y, Months: aggregate.MonthGrid(incidents, y)}
	}
	return fig
}

// Renderer writes figures and returns the paths it created.
type Renderer interface {
	Render(fig Figures) ([]string, error)
}

// YearFileName is the PNG name of a year's monthly grid.
func YearFileName(year int) string {
	return fmt.Sprintf("crime-by-month-hour-%d.png", year)
}

// File names of the single-file outputs.
const (
	JanuaryFileName  = "crime-january-sensitivity.png"
	WorkbookFileName = "crime-by-month-hour.xlsx"
)

func monthName(m int) string {
	return time.Month(m).String()
}

// tickLabels returns every third bucket label, the others blank.
func tickLabels() []string {
	labels := record.HourBucketLabels()
	for i := range labels {
		if i%3 != 0 {
			labels[i] = ""
		}
	}
	return labels
}
