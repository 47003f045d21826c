package ingest

import "strings"

// Kind is the expected cell type of a column.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	default:
		return "string"
	}
}

// Column describes one required input column.
type Column struct {
	Name    string
	Aliases []string
	Kind    Kind
}

// Matches reports whether a header cell names this column.
func (c Column) Matches(header string) bool {
	h := strings.TrimSpace(header)
	if strings.EqualFold(h, c.Name) {
		return true
	}
	for _, a := range c.Aliases {
		if strings.EqualFold(h, a) {
			return true
		}
	}
	return false
}

// Column names as published in the source export.
const (
	ColDate               = "Date"
	ColIncidentCode       = "IUCR"
	ColCategory           = "Primary Type"
	ColDescription        = "Description"
	ColDomestic           = "Domestic"
	ColClassificationCode = "FBI Code"
	ColYear               = "Year"
)

// Schema lists the required columns.
var Schema = []Column{
	{Name: ColDate, Kind: KindString},
	{Name: ColIncidentCode, Aliases: []string{"incident_code"}, Kind: KindString},
	{Name: ColCategory, Aliases: []string{"category"}, Kind: KindString},
	{Name: ColDescription, Kind: KindString},
	{Name: ColDomestic, Aliases: []string{"is_domestic"}, Kind: KindBool},
	{Name: ColClassificationCode, Aliases: []string{"classification_code"}, Kind: KindString},
	{Name: ColYear, Kind: KindInt},
}
