package cmd

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"

	"github.com/localstore/localstore/internal/config"
)

func newFlagCommand(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{}
	cmd.Flags().String("path", "", "")
	cmd.Flags().String("log-level", "", "")
	cmd.Flags().String("metrics-addr", "", "")
	return cmd
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := loadConfig(newFlagCommand(t))
	if err != nil {
		t.Fatalf("loadConfig() unexpected error: %v", err)
	}

	if cfg.Path != config.DefaultPath {
		t.Errorf("cfg.Path = %q, want %q", cfg.Path, config.DefaultPath)
	}
	if cfg.LogLevel != config.DefaultLogLevel {
		t.Errorf("cfg.LogLevel = %q, want %q", cfg.LogLevel, config.DefaultLogLevel)
	}
}

func TestLoadConfig_FlagsTakePrecedence(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LOCALSTORE_PATH", "/from/env")

	cmd := newFlagCommand(t)
	if err := cmd.Flags().Set("path", "/from/flag"); err != nil {
		t.Fatalf("setting flag: %v", err)
	}
	if err := cmd.Flags().Set("log-level", "DEBUG"); err != nil {
		t.Fatalf("setting flag: %v", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("loadConfig() unexpected error: %v", err)
	}

	if cfg.Path != "/from/flag" {
		t.Errorf("cfg.Path = %q, want flag value", cfg.Path)
	}
	if cfg.LogLevel != "DEBUG" {
		t.Errorf("cfg.LogLevel = %q, want %q", cfg.LogLevel, "DEBUG")
	}
}

func TestLoadConfig_InvalidLogLevelFlag(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := newFlagCommand(t)
	if err := cmd.Flags().Set("log-level", "VERBOSE"); err != nil {
		t.Fatalf("setting flag: %v", err)
	}

	_, err := loadConfig(cmd)
	if !errors.Is(err, config.ErrInvalidLogLevel) {
		t.Errorf("loadConfig() error = %v, want ErrInvalidLogLevel", err)
	}
}
