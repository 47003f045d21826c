package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/crimehours/internal/record"
)

// Options controls loading.
type Options struct {
	// Rows limits the number of data rows read. Zero reads everything.
	Rows int
}

// Table is the loaded input.
type Table struct {
	// Header is the header row as read, including ignored columns.
	Header []string
	Rows   []record.Raw
}

// LoadFile opens path and loads it with Load.
func LoadFile(path string, opts Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	tbl, err := Load(f, opts)
	if err != nil {
		return nil, err
	}
	slog.Info("input loaded",
		"path", path,
		"rows", len(tbl.Rows),
		"columns", len(tbl.Header))
	return tbl, nil
}

// Load reads a header row followed by data rows from r.
func Load(r io.Reader, opts Options) (*Table, error) {
	if opts.Rows < 0 {
		return nil, fmt.Errorf("row limit must be non-negative, got %d", opts.Rows)
	}

	reader := csv.NewReader(r)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &SchemaError{Reason: "input is empty"}
	}
	if err != nil {
		return nil, &SchemaError{Reason: fmt.Sprintf("read header: %v", err)}
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	idx, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}
	slog.Debug("columns resolved", "header", header)

	tbl := &Table{Header: header}
	row := 0
	for opts.Rows == 0 || row < opts.Rows {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			return nil, &SchemaError{Row: row, Reason: err.Error()}
		}

		raw, err := decodeRow(row, cells, idx)
		if err != nil {
			return nil, err
		}
		tbl.Rows = append(tbl.Rows, raw)
	}

	return tbl, nil
}

// resolveColumns maps every Schema column to its header position.
func resolveColumns(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(Schema))
	for _, col := range Schema {
		for i, h := range header {
			if col.Matches(h) {
				idx[col.Name] = i
				break
			}
		}
	}

	var missing []string
	for _, col := range Schema {
		if _, ok := idx[col.Name]; !ok {
			missing = append(missing, col.Name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{
			Column: strings.Join(missing, ", "),
			Reason: "missing required column",
		}
	}
	return idx, nil
}

func decodeRow(row int, cells []string, idx map[string]int) (record.Raw, error) {
	vals := make(map[string]any, len(Schema))
	for _, col := range Schema {
		v, err := parseCell(col, row, cells[idx[col.Name]])
		if err != nil {
			return record.Raw{}, err
		}
		vals[col.Name] = v
	}

	return record.Raw{
		Row:  row,
		Date: vals[ColDate].(string),
		Base: record.Base{
			IncidentCode:       vals[ColIncidentCode].(string),
			Category:           vals[ColCategory].(string),
			Description:        vals[ColDescription].(string),
			Domestic:           vals[ColDomestic].(bool),
			ClassificationCode: vals[ColClassificationCode].(string),
		},
		Year: vals[ColYear].(int),
	}, nil
}

// parseCell converts a raw cell to the Go type named by col.Kind:
// string, bool or int.
func parseCell(col Column, row int, raw string) (any, error) {
	v := canonical(raw)

	var (
		out any
		err error
	)
	switch col.Kind {
	case KindBool:
		out, err = strconv.ParseBool(v)
	case KindInt:
		out, err = strconv.Atoi(v)
	default:
		out = v
	}
	if err != nil {
		return nil, &SchemaError{
			Column: col.Name,
			Row:    row,
			Value:  raw,
			Reason: "expected " + col.Kind.String(),
		}
	}
	return out, nil
}

// canonical trims a cell and applies NFC normalization so that visually
// identical codes and descriptions compare equal.
func canonical(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
