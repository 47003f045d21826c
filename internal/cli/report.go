package cli

import (
	"strings"

	"github.com/roach88/crimehours/internal/consistency"
	"github.com/roach88/crimehours/internal/derive"
	"github.com/roach88/crimehours/internal/record"
)

// reportListLimit caps each advisory list in text output.
const reportListLimit = 30

// writeReport prints the advisory findings of a consistency check.
func writeReport(p *textPrinter, r *consistency.Report) {
	if r == nil {
		return
	}
	p.Printf("Rows checked: %d\n", r.Rows)
	p.Printf("Distinct incident codes: %d, category/description pairs: %d, classification codes: %d\n",
		r.DistinctIncidentCodes, r.DistinctPairs, r.DistinctClassifications)
	if !r.HasFindings() {
		p.Printf("No advisory findings\n")
		return
	}

	if len(r.DuplicateCodes) > 0 {
		p.Printf("Incident codes with several category/description pairs: %d\n", len(r.DuplicateCodes))
		for i, g := range r.DuplicateCodes {
			if truncated(p, i, len(r.DuplicateCodes)) {
				break
			}
			p.Printf("  %s: %s\n", g.IncidentCode, joinPairs(g.Pairs))
		}
	}

	if len(r.ClassificationSpread) > 0 {
		p.Printf("Classification codes shared by several incident codes: %d\n", len(r.ClassificationSpread))
		for i, g := range r.ClassificationSpread {
			if truncated(p, i, len(r.ClassificationSpread)) {
				break
			}
			codes := make([]string, len(g.Codes))
			for j, c := range g.Codes {
				codes[j] = c.IncidentCode
			}
			p.Printf("  %s: %s\n", g.ClassificationCode, strings.Join(codes, ", "))
		}
	}

	if len(r.CodeSpread) > 0 {
		p.Printf("Incident codes with several classification codes: %d\n", len(r.CodeSpread))
		for i, g := range r.CodeSpread {
			if truncated(p, i, len(r.CodeSpread)) {
				break
			}
			p.Printf("  %s: %s\n", g.IncidentCode, strings.Join(g.ClassificationCodes, ", "))
		}
	}
	if r.ManyToMany {
		p.Printf("Incident codes and classification codes are many-to-many\n")
	}

	if len(r.DomesticVariation) > 0 {
		p.Printf("Incident codes seen as both domestic and not: %s\n", strings.Join(r.DomesticVariation, ", "))
	}
}

// truncated prints a "more" line and reports true once i reaches the limit.
func truncated(p *textPrinter, i, n int) bool {
	if i < reportListLimit {
		return false
	}
	p.Printf("  ... and %d more\n", n-i)
	return true
}

func joinPairs(pairs []record.Pair) string {
	parts := make([]string, len(pairs))
	for i, pair := range pairs {
		parts[i] = pair.String()
	}
	return strings.Join(parts, "; ")
}

// writeViolentCodes prints the code combinations flagged violent.
func writeViolentCodes(p *textPrinter, codes []derive.ViolentCode) {
	var violent []derive.ViolentCode
	for _, c := range codes {
		if c.Violent {
			violent = append(violent, c)
		}
	}
	p.Printf("Violent code combinations: %d of %d\n", len(violent), len(codes))
	for _, c := range violent {
		p.Printf("  %s %s (%s)\n", c.IncidentCode, c.Category, c.ClassificationCode)
	}
}
