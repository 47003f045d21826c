package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// Header is the column header written by CSV, in the source export's naming.
var Header = []string{"ID", "Date", "IUCR", "Primary Type", "Description", "Domestic", "FBI Code", "Year"}

// Row is one input row. All cells are strings so tests can write malformed
// values.
type Row struct {
	Date         string
	IncidentCode string
	Category     string
	Description  string
	Domestic     string
	FBICode      string
	Year         string
}

// Homicide returns a violent row (FBI code 01A) at the given date.
func Homicide(date, year string) Row {
	return Row{
		Date:         date,
		IncidentCode: "0110",
		Category:     "HOMICIDE",
		Description:  "FIRST DEGREE MURDER",
		Domestic:     "false",
		FBICode:      "01A",
		Year:         year,
	}
}

// Theft returns a non-violent row (FBI code 06) at the given date.
func Theft(date, year string) Row {
	return Row{
		Date:         date,
		IncidentCode: "0820",
		Category:     "THEFT",
		Description:  "$500 AND UNDER",
		Domestic:     "false",
		FBICode:      "06",
		Year:         year,
	}
}

// Battery returns a non-violent domestic row (FBI code 08B) at the given date.
func Battery(date, year string) Row {
	return Row{
		Date:         date,
		IncidentCode: "0486",
		Category:     "BATTERY",
		Description:  "DOMESTIC BATTERY SIMPLE",
		Domestic:     "true",
		FBICode:      "08B",
		Year:         year,
	}
}

// CSV renders rows under Header. The leading ID column is filled with the
// row position and exists to prove that extra columns are ignored.
func CSV(rows ...Row) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write(Header)
	for i, r := range rows {
		_ = w.Write([]string{
			strconv.Itoa(i + 1),
			r.Date, r.IncidentCode, r.Category, r.Description,
			r.Domestic, r.FBICode, r.Year,
		})
	}
	w.Flush()
	return sb.String()
}

// WriteCSV writes rows to crimes.csv in a fresh temp dir and returns the path.
func WriteCSV(t testing.TB, rows ...Row) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crimes.csv")
	if err := os.WriteFile(path, []byte(CSV(rows...)), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}
