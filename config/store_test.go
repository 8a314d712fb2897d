// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store_test.go
// Summary: Exercises layered configuration loading and range validation.
// Usage: Executed during `go test` to guard against regressions.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func writeUserConfig(t *testing.T, body string) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)
	dir := filepath.Join(root, "testrain")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, configName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ForceNeo || cfg.Verbosity != 0 || cfg.LogFile != "" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	opts := cfg.RainOptions()
	if opts.Tick != 10*time.Millisecond || opts.SpeedMin != 100*time.Millisecond || opts.SpeedMax != 200*time.Millisecond {
		t.Fatalf("unexpected rain timing %+v", opts)
	}
	if opts.SizeMin != 10 || opts.SizeMax != 20 {
		t.Fatalf("unexpected rain sizes %+v", opts)
	}
}

func TestLoadUserFileOverridesDefaults(t *testing.T) {
	writeUserConfig(t, `{"verbosity": 1, "rain": {"size_min": 3, "size_max": 4}}`)

	cfg, err := Load(Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Verbosity != 1 {
		t.Fatalf("expected verbosity from file, got %d", cfg.Verbosity)
	}
	if cfg.Rain.SizeMin != 3 || cfg.Rain.SizeMax != 4 || cfg.Rain.TickMS != 10 {
		t.Fatalf("expected partial merge, got %+v", cfg.Rain)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	writeUserConfig(t, `{"rain": {"speed_min_ms": 50}}`)
	t.Setenv("TESTRAIN_RAIN_SPEED_MIN_MS", "120")
	t.Setenv("TESTRAIN_FORCE_NEO", "true")

	cfg, err := Load(Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Rain.SpeedMinMS != 120 || !cfg.ForceNeo {
		t.Fatalf("expected env overrides, got %+v", cfg)
	}
}

func TestLoadFlagsOverrideEverything(t *testing.T) {
	writeUserConfig(t, `{"verbosity": 1, "log_file": "/tmp/file.log"}`)
	t.Setenv("TESTRAIN_VERBOSITY", "1")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.CountP("verbose", "v", "")
	flags.String("log-file", "", "")
	flags.Bool("force-neo", false, "")
	if err := flags.Parse([]string{"-vv", "--force-neo"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(Options{Flags: flags})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Verbosity != 2 || !cfg.ForceNeo {
		t.Fatalf("expected flag values, got %+v", cfg)
	}
	if cfg.LogFile != "/tmp/file.log" {
		t.Fatalf("unset flag must not override file, got %q", cfg.LogFile)
	}
}

func TestLoadExplicitPathMustExist(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	_, err := Load(Options{Path: filepath.Join(t.TempDir(), "missing.json")})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected missing file error, got %v", err)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := writeUserConfig(t, `{"rain": `)
	if _, err := Load(Options{Path: path}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestValidateRanges(t *testing.T) {
	good := RainConfig{TickMS: 10, SpeedMinMS: 100, SpeedMaxMS: 200, SizeMin: 10, SizeMax: 20}
	cases := []struct {
		name string
		edit func(*RainConfig)
		want error
	}{
		{"ok", func(*RainConfig) {}, nil},
		{"tick above speed", func(r *RainConfig) { r.TickMS = 150 }, ErrTickTooSlow},
		{"zero tick", func(r *RainConfig) { r.TickMS = 0 }, ErrTickTooSlow},
		{"speed inverted", func(r *RainConfig) { r.SpeedMaxMS = 100 }, ErrSpeedRange},
		{"zero size", func(r *RainConfig) { r.SizeMin = 0 }, ErrSizeRange},
		{"size inverted", func(r *RainConfig) { r.SizeMax = 5 }, ErrSizeRange},
	}
	for _, tc := range cases {
		r := good
		tc.edit(&r)
		err := Config{Rain: r}.Validate()
		if tc.want == nil && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestLoadRejectsInvalidEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TESTRAIN_RAIN_SIZE_MIN", "30")
	if _, err := Load(Options{}); !errors.Is(err, ErrSizeRange) {
		t.Fatalf("expected size range error, got %v", err)
	}
}
