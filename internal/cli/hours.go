package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/crimehours/internal/aggregate"
	"github.com/roach88/crimehours/internal/pipeline"
	"github.com/roach88/crimehours/internal/record"
)

// HoursOptions holds flags for the hours command.
type HoursOptions struct {
	*RootOptions
	ConfigFile string
	EnvFile    string
	Rows       int
	Slice      aggregate.Slice

	// RunIDs allows overriding the run id generator (for testing).
	RunIDs pipeline.RunIDGenerator
}

// HoursResult is the violent-by-hour mapping of one slice.
type HoursResult struct {
	RunID     string              `json:"run_id"`
	Slice     aggregate.Slice     `json:"slice"`
	Histogram aggregate.Histogram `json:"histogram"`
	Total     int                 `json:"total"`
}

func (r HoursResult) runIdentifier() string { return r.RunID }

// WriteText prints one line per bucket in shift order, then the total.
func (r HoursResult) WriteText(p *textPrinter) error {
	p.Printf("Violent incidents by hour, %s %d", time.Month(r.Slice.Month), r.Slice.Year)
	if r.Slice.ExcludeDay != 0 {
		p.Printf(" (excluding day %d)", r.Slice.ExcludeDay)
	}
	p.Printf("\n")
	for _, e := range r.Histogram.Entries() {
		p.Printf("%-6s%10s\n", e.HourBucket.String(), p.Count(e.Count))
	}
	p.Printf("%-6s%10s\n", "Total", p.Count(r.Total))
	return nil
}

// NewHoursCommand creates the hours command.
func NewHoursCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HoursOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "hours <csv>",
		Short: "Print violent incident counts by hour bucket for one month",
		Long: `Run the pipeline over an incident CSV and print the number of violent
incidents in each of the 24 hour buckets for one month of one year. Buckets
are listed in shift order, 7AM through 6AM, including empty ones.

Date layouts and the row limit come from the same config layers as run.

Example:
  crimehours hours crimes.csv --year 2015 --month 1
  crimehours hours crimes.csv --year 2015 --month 1 --exclude-day 1 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHours(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigFile, "config", "", "path to YAML config file")
	cmd.Flags().StringVar(&opts.EnvFile, "env-file", ".env", "path to dotenv file (ignored if missing)")
	cmd.Flags().IntVar(&opts.Rows, "rows", 0, "load at most this many rows (0 = all)")
	cmd.Flags().IntVar(&opts.Slice.Year, "year", 0, "year to count (required)")
	cmd.Flags().IntVar(&opts.Slice.Month, "month", 0, "month to count, 1-12 (required)")
	cmd.Flags().IntVar(&opts.Slice.ExcludeDay, "exclude-day", 0, "day of the month to leave out")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("month")

	return cmd
}

func runHours(opts *HoursOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if err := opts.Slice.Validate(); err != nil {
		_ = formatter.Error(ErrCodeUsage, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid slice", err)
	}

	cfg, err := loadInputConfig(cmd, opts.ConfigFile, opts.EnvFile, path, opts.Rows)
	if err != nil {
		return formatter.Fail("failed to load config", err)
	}

	p := pipeline.New(pipeline.Options{
		Rows:    cfg.Rows,
		Layouts: cfg.DateLayouts,
		RunIDs:  opts.RunIDs,
	})
	res, err := p.RunFile(path)
	if err != nil {
		return formatter.Fail("pipeline failed", err)
	}

	h := aggregate.ViolentByHour(res.Incidents, opts.Slice)
	formatter.VerboseLog("Peak bucket count %d of %d buckets", h.Max(), record.NumHourBuckets)

	return formatter.Success(HoursResult{
		RunID:     res.RunID,
		Slice:     opts.Slice,
		Histogram: h,
		Total:     h.Total(),
	})
}
