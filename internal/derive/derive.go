// Package derive computes the analytical fields of each checked incident:
// the violent-crime flag, the calendar parts of its timestamp and its
// shift-ordered hour bucket.
package derive

import (
	"errors"
	"slices"
	"sort"

	"github.com/roach88/crimehours/internal/record"
	"github.com/roach88/crimehours/internal/temporal"
)

// ViolentCodes are the classification codes counted as violent crime:
// homicide, criminal sexual assault, robbery, aggravated assault and
// aggravated battery.
var ViolentCodes = []string{"01A", "02", "03", "04A", "04B"}

var violentSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(ViolentCodes))
	for _, c := range ViolentCodes {
		m[c] = struct{}{}
	}
	return m
}()

// IsViolent reports whether a classification code is in ViolentCodes.
// Matching is exact.
func IsViolent(classificationCode string) bool {
	_, ok := violentSet[classificationCode]
	return ok
}

// Bucket returns the hour bucket for an hour of day.
func Bucket(hour int) (record.HourBucket, error) {
	label := temporal.HourLabel(hour)
	b, err := record.ParseHourBucket(label)
	if err != nil {
		return 0, err
	}
	// The bucket must carry the label it was parsed from.
	if b.String() != label {
		return 0, &record.UnknownHourLabelError{Label: label}
	}
	return b, nil
}

// Build returns the final incident records for rows.
// It stops at the first row whose hour cannot be bucketed.
func Build(rows []record.Checked) ([]record.Incident, error) {
	out := make([]record.Incident, len(rows))
	for i, r := range rows {
		parts := temporal.Split(r.Date)
		bucket, err := Bucket(parts.Hour)
		if err != nil {
			var he *record.UnknownHourLabelError
			if errors.As(err, &he) {
				he.Row = r.Row
			}
			return nil, err
		}
		out[i] = record.Incident{
			Row:        r.Row,
			Date:       r.Date,
			Base:       r.Base,
			Violent:    IsViolent(r.ClassificationCode),
			Year:       parts.Year,
			Month:      parts.Month,
			Day:        parts.Day,
			HourBucket: bucket,
		}
	}
	return out, nil
}

// ViolentCode is one distinct (incident code, category, classification)
// combination with its violent flag.
type ViolentCode struct {
	IncidentCode       string `json:"incident_code"`
	Category           string `json:"category"`
	ClassificationCode string `json:"classification_code"`
	Violent            bool   `json:"violent"`
}

// ViolentTable lists the distinct code combinations in incidents, sorted by
// incident code then classification code, for inspecting the flag.
func ViolentTable(incidents []record.Incident) []ViolentCode {
	var out []ViolentCode
	for _, in := range incidents {
		vc := ViolentCode{
			IncidentCode:       in.IncidentCode,
			Category:           in.Category,
			ClassificationCode: in.ClassificationCode,
			Violent:            in.Violent,
		}
		if !slices.Contains(out, vc) {
			out = append(out, vc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IncidentCode != out[j].IncidentCode {
			return out[i].IncidentCode < out[j].IncidentCode
		}
		if out[i].ClassificationCode != out[j].ClassificationCode {
			return out[i].ClassificationCode < out[j].ClassificationCode
		}
		return out[i].Category < out[j].Category
	})
	return out
}
