package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 2009, cfg.YearFrom)
	assert.Equal(t, 2018, cfg.YearTo)
	assert.True(t, cfg.HasFormat(FormatPNG))
	assert.False(t, cfg.HasFormat(FormatXLSX))
	assert.NotEmpty(t, cfg.DateLayouts)
}

func TestLoadWithoutSources(t *testing.T) {
	cfg, err := Load(Sources{})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, "crimehours.yaml", `
input: data/crimes.csv
rows: 1000
year_from: 2012
formats: [png, xlsx]
`)

	cfg, err := Load(Sources{File: path})
	require.NoError(t, err)
	assert.Equal(t, "data/crimes.csv", cfg.Input)
	assert.Equal(t, 1000, cfg.Rows)
	assert.Equal(t, 2012, cfg.YearFrom)
	assert.Equal(t, 2018, cfg.YearTo)
	assert.Equal(t, []string{"png", "xlsx"}, cfg.Formats)
	assert.Equal(t, ".", cfg.OutDir)
}

func TestLoadEmptyYAML(t *testing.T) {
	path := writeFile(t, "empty.yaml", "")
	cfg, err := Load(Sources{File: path})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAMLRejectsUnknownFields(t *testing.T) {
	path := writeFile(t, "typo.yaml", "row: 10\n")
	_, err := Load(Sources{File: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadMissingYAML(t *testing.T) {
	_, err := Load(Sources{File: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	path := writeFile(t, "crimehours.yaml", "rows: 1000\nout_dir: plots\n")
	t.Setenv("CRIMEHOURS_ROWS", "25")
	t.Setenv("CRIMEHOURS_FORMATS", "xlsx")

	cfg, err := Load(Sources{File: path})
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Rows)
	assert.Equal(t, "plots", cfg.OutDir)
	assert.Equal(t, []string{"xlsx"}, cfg.Formats)
}

func TestLoadEnvFile(t *testing.T) {
	envFile := writeFile(t, ".env", "CRIMEHOURS_YEAR_TO=2016\n")
	t.Setenv("CRIMEHOURS_YEAR_TO", "")
	os.Unsetenv("CRIMEHOURS_YEAR_TO")

	cfg, err := Load(Sources{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, 2016, cfg.YearTo)
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(Sources{EnvFile: filepath.Join(t.TempDir(), ".env")})
	assert.NoError(t, err)
}

func TestLoadBadEnvValue(t *testing.T) {
	t.Setenv("CRIMEHOURS_ROWS", "many")
	_, err := Load(Sources{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config from env")
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative rows", func(c *Config) { c.Rows = -1 }},
		{"empty input", func(c *Config) { c.Input = "" }},
		{"empty out dir", func(c *Config) { c.OutDir = "" }},
		{"unknown format", func(c *Config) { c.Formats = []string{"gif"} }},
		{"empty formats", func(c *Config) { c.Formats = []string{} }},
		{"nil formats", func(c *Config) { c.Formats = nil }},
		{"years reversed", func(c *Config) { c.YearFrom, c.YearTo = 2015, 2010 }},
		{"year too early", func(c *Config) { c.YearFrom = 1999 }},
		{"no layouts", func(c *Config) { c.DateLayouts = []string{} }},
		{"negative sample", func(c *Config) { c.Sample = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestValidateAcceptsSingleYear(t *testing.T) {
	cfg := Default()
	cfg.YearFrom, cfg.YearTo = 2015, 2015
	cfg.Formats = []string{FormatXLSX, FormatPNG}
	assert.NoError(t, cfg.Validate())
}
