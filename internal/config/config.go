// Package config assembles the run configuration.
//
// Sources, lowest precedence first:
//
//  1. Default()
//  2. a YAML file (unknown keys are rejected)
//  3. a .env file, which only fills variables not already set
//  4. CRIMEHOURS_* environment variables
//
// Command-line flags are applied by the caller on top of the result. The
// final value is checked against the CUE definition in schema.cue.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/roach88/crimehours/internal/temporal"
)

//go:embed schema.cue
var schemaSource string

// EnvPrefix prefixes every environment variable, e.g. CRIMEHOURS_ROWS.
const EnvPrefix = "CRIMEHOURS"

// Output formats.
const (
	FormatPNG  = "png"
	FormatXLSX = "xlsx"
)

// Config holds the settings of a run.
type Config struct {
	Input       string   `yaml:"input" json:"input" split_words:"true"`
	Rows        int      `yaml:"rows" json:"rows" split_words:"true"`
	OutDir      string   `yaml:"out_dir" json:"out_dir" split_words:"true"`
	YearFrom    int      `yaml:"year_from" json:"year_from" split_words:"true"`
	YearTo      int      `yaml:"year_to" json:"year_to" split_words:"true"`
	Formats     []string `yaml:"formats" json:"formats" split_words:"true"`
	DateLayouts []string `yaml:"date_layouts" json:"date_layouts" split_words:"true"`
	Sample      int      `yaml:"sample" json:"sample" split_words:"true"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Input:       "Crimes_-_2001_to_present.csv",
		OutDir:      ".",
		YearFrom:    2009,
		YearTo:      2018,
		Formats:     []string{FormatPNG},
		DateLayouts: append([]string(nil), temporal.DefaultLayouts...),
	}
}

// Sources names the optional files Load reads.
type Sources struct {
	// File is a YAML config file. Empty skips it.
	File string

	// EnvFile is a dotenv file. Empty skips it; a missing file is ignored.
	EnvFile string
}

// Load merges the configuration sources. It does not validate the result.
func Load(src Sources) (Config, error) {
	cfg := Default()

	if src.File != "" {
		if err := mergeFile(&cfg, src.File); err != nil {
			return Config{}, err
		}
	}

	if src.EnvFile != "" {
		if err := godotenv.Load(src.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config from env: %w", err)
	}

	return cfg, nil
}

// mergeFile decodes a YAML file over cfg. Keys absent from the file keep
// their current values.
func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// Validate checks cfg against the CUE schema.
func (c Config) Validate() error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	value := schema.Unify(ctx.Encode(c))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return &ValidationError{Details: cueerrors.Details(err, nil)}
	}
	return nil
}

// HasFormat reports whether format is enabled.
func (c Config) HasFormat(format string) bool {
	for _, f := range c.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// ValidationError reports a configuration that violates the schema.
type ValidationError struct {
	Details string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "invalid configuration: " + e.Details
}
