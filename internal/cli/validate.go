package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/crimehours/internal/consistency"
	"github.com/roach88/crimehours/internal/pipeline"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	ConfigFile string
	EnvFile    string
	Rows       int

	// RunIDs allows overriding the run id generator (for testing).
	RunIDs pipeline.RunIDGenerator
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                `json:"valid"`
	Input  string              `json:"input"`
	Report *consistency.Report `json:"report"`
}

// WriteText prints the result for humans.
func (r ValidationResult) WriteText(p *textPrinter) error {
	p.Printf("✓ %s is valid\n", r.Input)
	writeReport(p, r.Report)
	return nil
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <csv>",
		Short: "Check an incident export without rendering",
		Long: `Load an incident CSV, parse every date and run the code consistency
checks. Prints the advisory findings (incident codes with several
descriptions, classification spreads, domestic flag variation).

Exits 1 on a null field, an ambiguous category/description pair, a year
that disagrees with the date, a malformed date or a schema error.

Date layouts and the row limit come from the same config layers as run.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigFile, "config", "", "path to YAML config file")
	cmd.Flags().StringVar(&opts.EnvFile, "env-file", ".env", "path to dotenv file (ignored if missing)")
	cmd.Flags().IntVar(&opts.Rows, "rows", 0, "load at most this many rows (0 = all)")

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	cfg, err := loadInputConfig(cmd, opts.ConfigFile, opts.EnvFile, path, opts.Rows)
	if err != nil {
		return formatter.Fail("failed to load config", err)
	}

	formatter.VerboseLog("Checking %s with layouts %v", path, cfg.DateLayouts)
	p := pipeline.New(pipeline.Options{
		Rows:    cfg.Rows,
		Layouts: cfg.DateLayouts,
		RunIDs:  opts.RunIDs,
	})
	report, err := p.CheckFile(path)
	if err != nil {
		return formatter.Fail("validation failed", err)
	}

	return formatter.Success(ValidationResult{Valid: true, Input: path, Report: report})
}
