// Package config gathers the pminus settings from .env files and PMINUS_*
// environment variables. Variables set in the process environment win over
// values from files, and files listed earlier win over later ones.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/panyam/pminus/loader"
	"github.com/panyam/pminus/report"
)

const (
	EnvLogLevel     = "PMINUS_LOG_LEVEL"
	EnvMaxErrors    = "PMINUS_MAX_ERRORS"
	EnvMaxSymbols   = "PMINUS_MAX_SYMBOLS"
	EnvNoColor      = "PMINUS_NO_COLOR"
	EnvReportSuffix = "PMINUS_REPORT_SUFFIX"
)

// DefaultEnvFile is read when no files are given.
const DefaultEnvFile = ".env"

type Config struct {
	LogLevel     string
	MaxErrors    int
	MaxSymbols   int
	NoColor      bool
	ReportSuffix string
}

func Default() *Config {
	return &Config{
		LogLevel:     "info",
		MaxErrors:    loader.DefaultMaxErrors,
		MaxSymbols:   loader.DefaultMaxSymbols,
		ReportSuffix: report.DefaultSuffix,
	}
}

// Validate rejects limits no loader can honour.
func (c *Config) Validate() error {
	if c.MaxErrors < 0 {
		return fmt.Errorf("max errors must not be negative, got %d", c.MaxErrors)
	}
	if c.MaxSymbols < 0 {
		return fmt.Errorf("max symbols must not be negative, got %d", c.MaxSymbols)
	}
	return nil
}

// Options are the loader options this configuration implies.
func (c *Config) Options() loader.Options {
	return loader.Options{MaxErrors: c.MaxErrors, MaxSymbols: c.MaxSymbols}
}

// Load reads envFiles (DefaultEnvFile if none) and the environment.
// Files that do not exist are skipped.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	fileVals := map[string]string{}
	for i := len(envFiles) - 1; i >= 0; i-- {
		vals, err := godotenv.Read(envFiles[i])
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read env file '%s': %w", envFiles[i], err)
		}
		for k, v := range vals {
			fileVals[k] = v
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVals[key]
		return v, ok
	}
	return fromLookup(lookup)
}

func fromLookup(lookup func(string) (string, bool)) (*Config, error) {
	c := Default()
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	var err error
	if c.MaxErrors, err = intVar(lookup, EnvMaxErrors, c.MaxErrors); err != nil {
		return nil, err
	}
	if c.MaxSymbols, err = intVar(lookup, EnvMaxSymbols, c.MaxSymbols); err != nil {
		return nil, err
	}
	if v, ok := lookup(EnvNoColor); ok && v != "" {
		if c.NoColor, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("%s: %w", EnvNoColor, err)
		}
	}
	if v, ok := lookup(EnvReportSuffix); ok && v != "" {
		c.ReportSuffix = v
	}
	return c, nil
}

func intVar(lookup func(string) (string, bool), key string, def int) (int, error) {
	v, ok := lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	if n < 0 {
		return def, fmt.Errorf("%s: must not be negative, got %d", key, n)
	}
	return n, nil
}
