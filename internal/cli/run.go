package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/crimehours/internal/aggregate"
	"github.com/roach88/crimehours/internal/config"
	"github.com/roach88/crimehours/internal/consistency"
	"github.com/roach88/crimehours/internal/derive"
	"github.com/roach88/crimehours/internal/pipeline"
	"github.com/roach88/crimehours/internal/render"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	ConfigFile string
	EnvFile    string
	Input      string
	Rows       int
	OutDir     string
	YearFrom   int
	YearTo     int
	Formats    []string
	Sample     int
	Seed       uint64

	// RunIDs allows overriding the run id generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs pipeline.RunIDGenerator
}

// RunSummary is the output of a successful run.
type RunSummary struct {
	RunID     string               `json:"run_id"`
	Input     string               `json:"input"`
	Incidents int                  `json:"incidents"`
	Violent   int                  `json:"violent"`
	Years     []int                `json:"years"`
	Files     []string             `json:"files"`
	Report    *consistency.Report  `json:"report"`
	Codes     []derive.ViolentCode `json:"violent_codes"`
}

func (s RunSummary) runIdentifier() string { return s.RunID }

// WriteText prints the summary for humans.
func (s RunSummary) WriteText(p *textPrinter) error {
	p.Printf("Run %s\n", s.RunID)
	p.Printf("Input: %s\n", s.Input)
	p.Printf("Incidents: %d (violent %d)\n", s.Incidents, s.Violent)
	writeReport(p, s.Report)
	writeViolentCodes(p, s.Codes)
	p.Printf("Wrote %d file(s):\n", len(s.Files))
	for _, f := range s.Files {
		p.Printf("  %s\n", f)
	}
	return nil
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline and render the charts",
		Long: `Load the input, normalize dates, check code consistency, derive the
violent flag and hour buckets, then write one monthly chart grid per year,
the January sensitivity chart and, if enabled, an XLSX workbook.

Settings come from built-in defaults, then the --config YAML file, then the
.env file, then CRIMEHOURS_* environment variables, then flags.

Example:
  crimehours run --input crimes.csv --out ./charts
  crimehours run --config crimehours.yaml --formats png,xlsx --from 2015 --to 2016`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigFile, "config", "", "path to YAML config file")
	cmd.Flags().StringVar(&opts.EnvFile, "env-file", ".env", "path to dotenv file (ignored if missing)")
	cmd.Flags().StringVar(&opts.Input, "input", "", "path to the incident CSV")
	cmd.Flags().IntVar(&opts.Rows, "rows", 0, "load at most this many rows (0 = all)")
	cmd.Flags().StringVar(&opts.OutDir, "out", "", "output directory")
	cmd.Flags().IntVar(&opts.YearFrom, "from", 0, "first year to render")
	cmd.Flags().IntVar(&opts.YearTo, "to", 0, "last year to render")
	cmd.Flags().StringSliceVar(&opts.Formats, "formats", nil, "output formats (png,xlsx)")
	cmd.Flags().IntVar(&opts.Sample, "sample", 0, "log this many random raw/parsed date pairs at debug level")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 1, "seed for --sample")

	return cmd
}

func runPipeline(opts *RunOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := config.Load(config.Sources{File: opts.ConfigFile, EnvFile: opts.EnvFile})
	if err != nil {
		return formatter.Fail("failed to load config", err)
	}
	applyRunFlags(&cfg, opts, cmd)
	if err := cfg.Validate(); err != nil {
		return formatter.Fail("invalid config", err)
	}
	formatter.VerboseLog("Input %s, years %d-%d, formats %v", cfg.Input, cfg.YearFrom, cfg.YearTo, cfg.Formats)

	p := pipeline.New(pipeline.Options{
		Rows:    cfg.Rows,
		Layouts: cfg.DateLayouts,
		Sample:  cfg.Sample,
		Seed:    opts.Seed,
		RunIDs:  opts.RunIDs,
	})
	res, err := p.RunFile(cfg.Input)
	if err != nil {
		return formatter.Fail("pipeline failed", err)
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return formatter.Fail("failed to create output directory", err)
	}

	years := aggregate.Years(cfg.YearFrom, cfg.YearTo)
	fig := render.Collect(res.Incidents, years)

	var files []string
	for _, r := range renderers(cfg) {
		paths, err := r.Render(fig)
		if err != nil {
			return formatter.Fail("render failed", err)
		}
		files = append(files, paths...)
	}
	slog.Info("charts written", "run_id", res.RunID, "files", len(files))

	violent := 0
	for _, in := range res.Incidents {
		if in.Violent {
			violent++
		}
	}
	return formatter.Success(RunSummary{
		RunID:     res.RunID,
		Input:     cfg.Input,
		Incidents: len(res.Incidents),
		Violent:   violent,
		Years:     years,
		Files:     files,
		Report:    res.Report,
		Codes:     res.Codes,
	})
}

// applyRunFlags copies explicitly set flags over cfg.
func applyRunFlags(cfg *config.Config, opts *RunOptions, cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = opts.Input
	}
	if flags.Changed("rows") {
		cfg.Rows = opts.Rows
	}
	if flags.Changed("out") {
		cfg.OutDir = opts.OutDir
	}
	if flags.Changed("from") {
		cfg.YearFrom = opts.YearFrom
	}
	if flags.Changed("to") {
		cfg.YearTo = opts.YearTo
	}
	if flags.Changed("formats") {
		cfg.Formats = opts.Formats
	}
	if flags.Changed("sample") {
		cfg.Sample = opts.Sample
	}
}

// loadInputConfig loads the layered config for a command that reads a
// single CSV given on the command line. rows overrides the configured row
// limit when the --rows flag was set.
func loadInputConfig(cmd *cobra.Command, configFile, envFile, input string, rows int) (config.Config, error) {
	cfg, err := config.Load(config.Sources{File: configFile, EnvFile: envFile})
	if err != nil {
		return cfg, err
	}
	cfg.Input = input
	if cmd.Flags().Changed("rows") {
		cfg.Rows = rows
	}
	return cfg, cfg.Validate()
}

func renderers(cfg config.Config) []render.Renderer {
	var out []render.Renderer
	if cfg.HasFormat(config.FormatPNG) {
		out = append(out, render.PNG{OutDir: cfg.OutDir})
	}
	if cfg.HasFormat(config.FormatXLSX) {
		out = append(out, render.Workbook{OutDir: cfg.OutDir})
	}
	return out
}
