package consistency

import (
	"errors"
	"log/slog"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/roach88/crimehours/internal/record"
)

// Checker runs the consistency checks.
type Checker struct {
	validate *validator.Validate
}

// NewChecker creates a Checker. Null detection is driven by the
// `validate:"required"` tags on record.Base.
func NewChecker() *Checker {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Checker{validate: v}
}

// Check validates rows and returns them without the year column, together
// with the advisory findings. The first fatal violation aborts the check and
// no records are returned.
func (c *Checker) Check(rows []record.Parsed) ([]record.Checked, *Report, error) {
	for _, r := range rows {
		if err := c.checkNulls(r); err != nil {
			return nil, nil, err
		}
	}

	for _, r := range rows {
		if y := r.Date.Year(); y != r.Year {
			return nil, nil, &YearMismatchError{Row: r.Row, Recorded: r.Year, Parsed: y}
		}
	}

	idx := buildIndex(rows)
	if err := idx.ambiguity(); err != nil {
		return nil, nil, err
	}

	report := idx.report(len(rows))
	logReport(report)

	out := make([]record.Checked, len(rows))
	for i, r := range rows {
		out[i] = record.Checked{Row: r.Row, Date: r.Date, Base: r.Base}
	}
	return out, report, nil
}

func (c *Checker) checkNulls(r record.Parsed) error {
	err := c.validate.Struct(r.Base)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &NullFieldError{Row: r.Row, Fields: fields}
}

// index holds the distinct combinations seen in the table, in first-seen
// order so that findings are reported deterministically.
type index struct {
	pairOrder  []record.Pair
	pairCodes  map[record.Pair][]string
	codeOrder  []string
	codePairs  map[string][]record.Pair
	codeClass  map[string][]string
	classOrder []string
	classKeys  map[string][]CodeKey
	domestic   map[string][2]bool
}

func buildIndex(rows []record.Parsed) *index {
	idx := &index{
		pairCodes: make(map[record.Pair][]string),
		codePairs: make(map[string][]record.Pair),
		codeClass: make(map[string][]string),
		classKeys: make(map[string][]CodeKey),
		domestic:  make(map[string][2]bool),
	}

	for _, r := range rows {
		pair := r.Pair()
		code := r.IncidentCode

		if _, ok := idx.pairCodes[pair]; !ok {
			idx.pairOrder = append(idx.pairOrder, pair)
		}
		idx.pairCodes[pair] = appendUnique(idx.pairCodes[pair], code)

		if _, ok := idx.codePairs[code]; !ok {
			idx.codeOrder = append(idx.codeOrder, code)
		}
		if !slices.Contains(idx.codePairs[code], pair) {
			idx.codePairs[code] = append(idx.codePairs[code], pair)
		}
		idx.codeClass[code] = appendUnique(idx.codeClass[code], r.ClassificationCode)

		class := r.ClassificationCode
		if _, ok := idx.classKeys[class]; !ok {
			idx.classOrder = append(idx.classOrder, class)
		}
		key := CodeKey{IncidentCode: code, Category: r.Category, Description: r.Description}
		if !slices.Contains(idx.classKeys[class], key) {
			idx.classKeys[class] = append(idx.classKeys[class], key)
		}

		seen := idx.domestic[code]
		if r.Domestic {
			seen[1] = true
		} else {
			seen[0] = true
		}
		idx.domestic[code] = seen
	}
	return idx
}

func (idx *index) ambiguity() error {
	for _, pair := range idx.pairOrder {
		codes := idx.pairCodes[pair]
		if len(codes) > 1 {
			sorted := slices.Clone(codes)
			sort.Strings(sorted)
			return &CodeAmbiguityError{Pair: pair, IncidentCodes: sorted}
		}
	}
	return nil
}

func (idx *index) report(rows int) *Report {
	r := &Report{
		Rows:                    rows,
		DistinctIncidentCodes:   len(idx.codeOrder),
		DistinctPairs:           len(idx.pairOrder),
		DistinctClassifications: len(idx.classOrder),
	}

	codes := slices.Clone(idx.codeOrder)
	sort.Strings(codes)

	for _, code := range codes {
		if pairs := idx.codePairs[code]; len(pairs) > 1 {
			r.DuplicateCodes = append(r.DuplicateCodes, CodeGroup{IncidentCode: code, Pairs: pairs})
		}
		if classes := idx.codeClass[code]; len(classes) > 1 {
			sorted := slices.Clone(classes)
			sort.Strings(sorted)
			r.CodeSpread = append(r.CodeSpread, CodeClassifications{IncidentCode: code, ClassificationCodes: sorted})
		}
		if seen := idx.domestic[code]; seen[0] && seen[1] {
			r.DomesticVariation = append(r.DomesticVariation, code)
		}
	}

	classes := slices.Clone(idx.classOrder)
	sort.Strings(classes)
	for _, class := range classes {
		if keys := idx.classKeys[class]; len(keys) > 1 {
			r.ClassificationSpread = append(r.ClassificationSpread, ClassificationGroup{ClassificationCode: class, Codes: keys})
		}
	}

	r.ManyToMany = len(r.ClassificationSpread) > 0 && len(r.CodeSpread) > 0
	return r
}

func logReport(r *Report) {
	for _, g := range r.DuplicateCodes {
		slog.Warn("incident code maps to several category/description pairs",
			"incident_code", g.IncidentCode,
			"pairs", len(g.Pairs))
	}
	slog.Info("classification mapping inspected",
		"classification_codes_spanning_several_codes", len(r.ClassificationSpread),
		"incident_codes_spanning_several_classifications", len(r.CodeSpread),
		"many_to_many", r.ManyToMany)
	if len(r.DomesticVariation) > 0 {
		slog.Info("domestic flag varies within incident codes",
			"incident_codes", len(r.DomesticVariation))
	}
	slog.Debug("consistency checks passed",
		"rows", r.Rows,
		"incident_codes", r.DistinctIncidentCodes,
		"pairs", r.DistinctPairs)
}

func appendUnique(list []string, s string) []string {
	if slices.Contains(list, s) {
		return list
	}
	return append(list, s)
}
