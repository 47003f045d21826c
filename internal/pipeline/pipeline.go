package pipeline

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/roach88/crimehours/internal/consistency"
	"github.com/roach88/crimehours/internal/derive"
	"github.com/roach88/crimehours/internal/ingest"
	"github.com/roach88/crimehours/internal/record"
	"github.com/roach88/crimehours/internal/temporal"
)

// Options configures a Pipeline.
type Options struct {
	// Rows limits the rows loaded by RunFile. Zero loads everything.
	Rows int

	// Layouts overrides temporal.DefaultLayouts.
	Layouts []string

	// Sample is the number of random rows whose raw and parsed dates are
	// logged at debug level after normalization.
	Sample int

	// Seed makes the sample reproducible.
	Seed uint64

	// RunIDs defaults to UUIDv7Generator.
	RunIDs RunIDGenerator
}

// Result is the output of a successful run.
type Result struct {
	RunID     string               `json:"run_id"`
	Header    []string             `json:"header,omitempty"`
	Incidents []record.Incident    `json:"-"`
	Report    *consistency.Report  `json:"report"`
	Codes     []derive.ViolentCode `json:"violent_codes"`
}

// Pipeline runs the stages.
type Pipeline struct {
	opts       Options
	normalizer *temporal.Normalizer
	checker    *consistency.Checker
	runIDs     RunIDGenerator
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	runIDs := opts.RunIDs
	if runIDs == nil {
		runIDs = UUIDv7Generator{}
	}
	return &Pipeline{
		opts:       opts,
		normalizer: temporal.NewNormalizer(opts.Layouts...),
		checker:    consistency.NewChecker(),
		runIDs:     runIDs,
	}
}

// RunFile loads path and processes its rows.
func (p *Pipeline) RunFile(path string) (*Result, error) {
	tbl, err := ingest.LoadFile(path, ingest.Options{Rows: p.opts.Rows})
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	res, err := p.Process(tbl.Rows)
	if err != nil {
		return nil, err
	}
	res.Header = tbl.Header
	return res, nil
}

// CheckFile loads path, normalizes its dates and runs the consistency
// checks. Derived fields are not built.
func (p *Pipeline) CheckFile(path string) (*consistency.Report, error) {
	tbl, err := ingest.LoadFile(path, ingest.Options{Rows: p.opts.Rows})
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	log := slog.With("run_id", p.runIDs.Generate())
	log.Info("check starting", "rows", len(tbl.Rows))

	_, report, err := p.check(log, tbl.Rows)
	if err != nil {
		return nil, err
	}
	log.Info("check finished", "advisories", report.HasFindings())
	return report, nil
}

// Process runs every stage after loading.
func (p *Pipeline) Process(rows []record.Raw) (*Result, error) {
	runID := p.runIDs.Generate()
	log := slog.With("run_id", runID)
	log.Info("pipeline starting", "rows", len(rows))

	checked, report, err := p.check(log, rows)
	if err != nil {
		return nil, err
	}

	incidents, err := derive.Build(checked)
	if err != nil {
		log.Error("derived field build failed", "error", err)
		return nil, fmt.Errorf("derive: %w", err)
	}

	violent := 0
	for _, in := range incidents {
		if in.Violent {
			violent++
		}
	}
	log.Info("pipeline finished", "incidents", len(incidents), "violent", violent)

	return &Result{
		RunID:     runID,
		Incidents: incidents,
		Report:    report,
		Codes:     derive.ViolentTable(incidents),
	}, nil
}

func (p *Pipeline) check(log *slog.Logger, rows []record.Raw) ([]record.Checked, *consistency.Report, error) {
	parsed, err := p.normalizer.Normalize(rows)
	if err != nil {
		log.Error("date normalization failed",
			"error", err,
			"layouts", p.normalizer.Layouts())
		return nil, nil, fmt.Errorf("normalize: %w", err)
	}
	log.Debug("dates normalized",
		"rows", len(parsed),
		"layouts", p.normalizer.Layouts())
	p.logSample(log, rows, parsed)

	checked, report, err := p.checker.Check(parsed)
	if err != nil {
		log.Error("consistency check failed", "error", err)
		return nil, nil, fmt.Errorf("check: %w", err)
	}
	log.Debug("consistency checks passed", "advisories", report.HasFindings())
	return checked, report, nil
}

func (p *Pipeline) logSample(log *slog.Logger, raw []record.Raw, parsed []record.Parsed) {
	n := min(p.opts.Sample, len(parsed))
	if n <= 0 {
		return
	}
	rng := rand.New(rand.NewPCG(p.opts.Seed, p.opts.Seed))
	for _, i := range rng.Perm(len(parsed))[:n] {
		log.Debug("date sample",
			"row", parsed[i].Row,
			"raw", raw[i].Date,
			"parsed", parsed[i].Date)
	}
}
