package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-readiness-report/internal/dateutil"
	"github.com/alnah/go-readiness-report/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrInvalidConfig  = errors.New("invalid config")
)

// Config holds all configuration for the report server.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Report ReportConfig `yaml:"report"`
	PDF    PDFConfig    `yaml:"pdf"`
	Pool   PoolConfig   `yaml:"pool"`
}

// ServerConfig defines HTTP listener options.
type ServerConfig struct {
	Addr                   string `yaml:"addr"`                   // listen address (default ":8080")
	ReadTimeoutSeconds     int    `yaml:"readTimeoutSeconds"`     // request read deadline
	WriteTimeoutSeconds    int    `yaml:"writeTimeoutSeconds"`    // response write deadline; must cover PDF latency
	ShutdownTimeoutSeconds int    `yaml:"shutdownTimeoutSeconds"` // graceful shutdown bound
}

// ReportConfig defines report presentation options.
type ReportConfig struct {
	Organization string `yaml:"organization"` // branding line (empty = library default)
	DateFormat   string `yaml:"dateFormat"`   // dateutil tokens or preset (empty = "long")
}

// PDFConfig defines rasterization options.
type PDFConfig struct {
	TimeoutSeconds int `yaml:"timeoutSeconds"` // per-operation browser timeout
	SettleSeconds  int `yaml:"settleSeconds"`  // post-load idle bound
}

// PoolConfig defines browser pool options.
type PoolConfig struct {
	Workers int `yaml:"workers"` // 0 = auto (GOMAXPROCS-based)
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:                   ":8080",
			ReadTimeoutSeconds:     15,
			WriteTimeoutSeconds:    90, // worst case: load 30s + settle 3s + render 30s
			ShutdownTimeoutSeconds: 10,
		},
		Report: ReportConfig{},
		PDF: PDFConfig{
			TimeoutSeconds: 30,
			SettleSeconds:  3,
		},
		Pool: PoolConfig{Workers: 0},
	}
}

// LoadConfig reads a YAML config file into the defaults.
// Returns ErrConfigNotFound if the path does not exist (no silent fallback).
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is operator-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	return cfg, nil
}

// knownEnvVars lists valid REPORTD_* environment variables.
// Used to detect typos and warn operators about unknown variables.
var knownEnvVars = map[string]bool{
	"REPORTD_ADDR":         true,
	"REPORTD_ORGANIZATION": true,
	"REPORTD_DATE_FORMAT":  true,
	"REPORTD_PDF_TIMEOUT":  true,
	"REPORTD_WORKERS":      true,
}

// envPrefix scopes the server's environment variables.
const envPrefix = "REPORTD_"

// unknownEnvVars returns REPORTD_* variables from environ that the
// server does not recognize, so typos can be logged at startup.
func unknownEnvVars(environ []string) []string {
	var unknown []string
	for _, kv := range environ {
		name, _, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, envPrefix) {
			continue
		}
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// applyEnv overlays REPORTD_* environment variables onto cfg.
// Returns the names of recognized variables that were applied.
func applyEnv(cfg *Config, getenv func(string) string) []string {
	var applied []string

	if v := getenv("REPORTD_ADDR"); v != "" {
		cfg.Server.Addr = v
		applied = append(applied, "REPORTD_ADDR")
	}
	if v := getenv("REPORTD_ORGANIZATION"); v != "" {
		cfg.Report.Organization = v
		applied = append(applied, "REPORTD_ORGANIZATION")
	}
	if v := getenv("REPORTD_DATE_FORMAT"); v != "" {
		cfg.Report.DateFormat = v
		applied = append(applied, "REPORTD_DATE_FORMAT")
	}
	if v := getenv("REPORTD_PDF_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.PDF.TimeoutSeconds = int(d / time.Second)
			applied = append(applied, "REPORTD_PDF_TIMEOUT")
		}
	}
	if v := getenv("REPORTD_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Pool.Workers = n
			applied = append(applied, "REPORTD_WORKERS")
		}
	}

	return applied
}

// Validate checks config consistency before the server starts, so
// invalid values surface as startup errors rather than panics later.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr cannot be empty", ErrInvalidConfig)
	}
	if c.PDF.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: pdf.timeoutSeconds must be positive", ErrInvalidConfig)
	}
	if c.PDF.SettleSeconds <= 0 {
		return fmt.Errorf("%w: pdf.settleSeconds must be positive", ErrInvalidConfig)
	}
	if c.Pool.Workers < 0 {
		return fmt.Errorf("%w: pool.workers cannot be negative", ErrInvalidConfig)
	}
	if c.Server.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: server.shutdownTimeoutSeconds must be positive", ErrInvalidConfig)
	}
	if _, err := dateutil.ResolveFormat(c.Report.DateFormat); err != nil {
		return fmt.Errorf("%w: report.dateFormat: %v", ErrInvalidConfig, err)
	}
	return nil
}

// PDFTimeout returns the browser operation timeout as a duration.
func (c *Config) PDFTimeout() time.Duration {
	return time.Duration(c.PDF.TimeoutSeconds) * time.Second
}

// SettleWait returns the post-load idle bound as a duration.
func (c *Config) SettleWait() time.Duration {
	return time.Duration(c.PDF.SettleSeconds) * time.Second
}

// ShutdownTimeout returns the graceful shutdown bound as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}
