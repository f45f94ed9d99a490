package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/panyam/pminus/loader"
	"github.com/panyam/pminus/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{EnvLogLevel, EnvMaxErrors, EnvMaxSymbols, EnvNoColor, EnvReportSuffix} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeEnv(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestDefaultsWhenNothingSet(t *testing.T) {
	clearEnv(t)
	c, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, loader.DefaultMaxErrors, c.MaxErrors)
	assert.Equal(t, loader.DefaultMaxSymbols, c.MaxSymbols)
	assert.False(t, c.NoColor)
	assert.Equal(t, report.DefaultSuffix, c.ReportSuffix)
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)
	path := writeEnv(t, "PMINUS_LOG_LEVEL=DEBUG\nPMINUS_MAX_ERRORS=5\nPMINUS_NO_COLOR=true\n")
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 5, c.MaxErrors)
	assert.True(t, c.NoColor)
	assert.Equal(t, loader.Options{MaxErrors: 5, MaxSymbols: loader.DefaultMaxSymbols}, c.Options())

	// the file does not leak into the process environment
	_, set := os.LookupEnv(EnvMaxErrors)
	assert.False(t, set)
}

func TestEnvironmentWinsOverFile(t *testing.T) {
	clearEnv(t)
	path := writeEnv(t, "PMINUS_MAX_SYMBOLS=10\nPMINUS_REPORT_SUFFIX=.rep\n")
	t.Setenv(EnvMaxSymbols, "20")
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, c.MaxSymbols)
	assert.Equal(t, ".rep", c.ReportSuffix)
}

func TestEarlierFileWins(t *testing.T) {
	clearEnv(t)
	first := writeEnv(t, "PMINUS_MAX_ERRORS=1\n")
	second := writeEnv(t, "PMINUS_MAX_ERRORS=2\nPMINUS_MAX_SYMBOLS=3\n")
	c, err := Load(first, second)
	require.NoError(t, err)
	assert.Equal(t, 1, c.MaxErrors)
	assert.Equal(t, 3, c.MaxSymbols)
}

func TestInvalidNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvMaxErrors, "lots")
	_, err := Load(filepath.Join(t.TempDir(), "none"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvMaxErrors)

	clearEnv(t)
	t.Setenv(EnvNoColor, "maybe")
	_, err = Load(filepath.Join(t.TempDir(), "none"))
	assert.ErrorContains(t, err, EnvNoColor)
}

func TestNegativeLimitsRejected(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvMaxErrors, "-1")
	_, err := Load(filepath.Join(t.TempDir(), "none"))
	assert.ErrorContains(t, err, EnvMaxErrors)

	clearEnv(t)
	path := writeEnv(t, "PMINUS_MAX_SYMBOLS=-3\n")
	_, err = Load(path)
	assert.ErrorContains(t, err, EnvMaxSymbols)

	c := Default()
	require.NoError(t, c.Validate())
	c.MaxSymbols = -1
	assert.ErrorContains(t, c.Validate(), "max symbols")
	c.MaxSymbols, c.MaxErrors = 0, -2
	assert.ErrorContains(t, c.Validate(), "max errors")
}
