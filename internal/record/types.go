package record

import "time"

// Base holds the categorical columns carried unchanged through every stage.
type Base struct {
	IncidentCode       string `json:"incident_code" validate:"required"`
	Category           string `json:"category" validate:"required"`
	Description        string `json:"description" validate:"required"`
	Domestic           bool   `json:"is_domestic"`
	ClassificationCode string `json:"classification_code"`
}

// Pair returns the (category, description) key of the record.
func (b Base) Pair() Pair {
	return Pair{Category: b.Category, Description: b.Description}
}

// Pair is a (category, description) combination.
type Pair struct {
	Category    string `json:"category"`
	Description string `json:"description"`
}

func (p Pair) String() string {
	return p.Category + " / " + p.Description
}

// Raw is one row as loaded from the input file.
type Raw struct {
	Row  int    `json:"row"`
	Date string `json:"date"`
	Base
	Year int `json:"year"`
}

// Parsed is a Raw row whose date string has been replaced by a timestamp.
type Parsed struct {
	Row  int       `json:"row"`
	Date time.Time `json:"date"`
	Base
	Year int `json:"year"`
}

// Checked is a Parsed row that passed the consistency checks. The redundant
// year column has been dropped.
type Checked struct {
	Row  int       `json:"row"`
	Date time.Time `json:"date"`
	Base
}

// Incident is the final augmented record.
type Incident struct {
	Row  int       `json:"row"`
	Date time.Time `json:"date"`
	Base
	Violent    bool       `json:"violent"`
	Year       int        `json:"year"`
	Month      int        `json:"month"`
	Day        int        `json:"day"`
	HourBucket HourBucket `json:"hour_bucket"`
}
