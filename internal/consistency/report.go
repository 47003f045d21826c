package consistency

import "github.com/roach88/crimehours/internal/record"

// Report collects the advisory findings of a successful Check.
type Report struct {
	Rows                    int `json:"rows"`
	DistinctIncidentCodes   int `json:"distinct_incident_codes"`
	DistinctPairs           int `json:"distinct_pairs"`
	DistinctClassifications int `json:"distinct_classifications"`

	// DuplicateCodes lists incident codes with more than one
	// (category, description) pair.
	DuplicateCodes []CodeGroup `json:"duplicate_codes"`

	// ClassificationSpread lists classification codes shared by more than
	// one (incident code, category, description) combination.
	ClassificationSpread []ClassificationGroup `json:"classification_spread"`

	// CodeSpread lists incident codes that carry more than one
	// classification code.
	CodeSpread []CodeClassifications `json:"code_spread"`

	// ManyToMany is true when both spreads are non-empty.
	ManyToMany bool `json:"many_to_many"`

	// DomesticVariation lists incident codes seen with both domestic values.
	DomesticVariation []string `json:"domestic_variation"`
}

// CodeGroup is an incident code and its distinct (category, description) pairs.
type CodeGroup struct {
	IncidentCode string        `json:"incident_code"`
	Pairs        []record.Pair `json:"pairs"`
}

// CodeKey is an (incident code, category, description) combination.
type CodeKey struct {
	IncidentCode string `json:"incident_code"`
	Category     string `json:"category"`
	Description  string `json:"description"`
}

// ClassificationGroup is a classification code and the code combinations
// filed under it.
type ClassificationGroup struct {
	ClassificationCode string    `json:"classification_code"`
	Codes              []CodeKey `json:"codes"`
}

// CodeClassifications is an incident code and its distinct classification codes.
type CodeClassifications struct {
	IncidentCode        string   `json:"incident_code"`
	ClassificationCodes []string `json:"classification_codes"`
}

// HasFindings reports whether any advisory list is non-empty.
func (r *Report) HasFindings() bool {
	return len(r.DuplicateCodes) > 0 ||
		len(r.ClassificationSpread) > 0 ||
		len(r.CodeSpread) > 0 ||
		len(r.DomesticVariation) > 0
}
