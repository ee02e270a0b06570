package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reportd.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("overlays file onto defaults", func(t *testing.T) {
		path := writeConfigFile(t, "server:\n  addr: :9090\nreport:\n  organization: Acme Study Abroad\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Server.Addr != ":9090" {
			t.Errorf("Addr = %q, want :9090", cfg.Server.Addr)
		}
		if cfg.Report.Organization != "Acme Study Abroad" {
			t.Errorf("Organization = %q", cfg.Report.Organization)
		}
		// Untouched sections keep defaults.
		if cfg.PDF.TimeoutSeconds != 30 {
			t.Errorf("PDF.TimeoutSeconds = %d, want default 30", cfg.PDF.TimeoutSeconds)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		path := writeConfigFile(t, "server:\n  adddr: :9090\n")
		if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"REPORTD_ADDR":         ":7070",
		"REPORTD_ORGANIZATION": "Acme",
		"REPORTD_DATE_FORMAT":  "iso",
		"REPORTD_PDF_TIMEOUT":  "45s",
		"REPORTD_WORKERS":      "4",
	}
	getenv := func(k string) string { return env[k] }

	cfg := DefaultConfig()
	applied := applyEnv(cfg, getenv)

	if len(applied) != 5 {
		t.Errorf("applied = %v, want all 5 vars", applied)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Report.Organization != "Acme" {
		t.Errorf("Organization = %q", cfg.Report.Organization)
	}
	if cfg.Report.DateFormat != "iso" {
		t.Errorf("DateFormat = %q", cfg.Report.DateFormat)
	}
	if cfg.PDF.TimeoutSeconds != 45 {
		t.Errorf("PDF.TimeoutSeconds = %d, want 45", cfg.PDF.TimeoutSeconds)
	}
	if cfg.Pool.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Pool.Workers)
	}
}

func TestApplyEnvIgnoresInvalidValues(t *testing.T) {
	env := map[string]string{
		"REPORTD_PDF_TIMEOUT": "soon",
		"REPORTD_WORKERS":     "-2",
	}
	getenv := func(k string) string { return env[k] }

	cfg := DefaultConfig()
	applied := applyEnv(cfg, getenv)

	if len(applied) != 0 {
		t.Errorf("applied = %v, want none", applied)
	}
	if cfg.PDF.TimeoutSeconds != 30 || cfg.Pool.Workers != 0 {
		t.Errorf("invalid env values mutated config: %+v", cfg)
	}
}

func TestUnknownEnvVars(t *testing.T) {
	environ := []string{
		"REPORTD_ADDR=:8080",
		"REPORTD_WROKERS=3",
		"PATH=/usr/bin",
	}

	unknown := unknownEnvVars(environ)
	if len(unknown) != 1 || unknown[0] != "REPORTD_WROKERS" {
		t.Errorf("unknownEnvVars = %v, want [REPORTD_WROKERS]", unknown)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty addr", mutate: func(c *Config) { c.Server.Addr = "" }},
		{name: "zero pdf timeout", mutate: func(c *Config) { c.PDF.TimeoutSeconds = 0 }},
		{name: "zero settle", mutate: func(c *Config) { c.PDF.SettleSeconds = 0 }},
		{name: "negative workers", mutate: func(c *Config) { c.Pool.Workers = -1 }},
		{name: "zero shutdown timeout", mutate: func(c *Config) { c.Server.ShutdownTimeoutSeconds = 0 }},
		{name: "bad date format", mutate: func(c *Config) { c.Report.DateFormat = "[oops" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestParseFlags(t *testing.T) {
	flags, err := parseFlags([]string{"reportd", "--addr", ":9999", "-w", "2", "--verbose"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flags.addr != ":9999" || flags.workers != 2 || !flags.verbose {
		t.Errorf("flags = %+v", flags)
	}
}

func TestParseFlagsRejectsUnknown(t *testing.T) {
	if _, err := parseFlags([]string{"reportd", "--bogus"}); err == nil {
		t.Error("expected error for unknown flag")
	}
}
