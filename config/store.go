// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: Layered loading of embedded defaults, user file, environment and flags.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/framegrace/testrain/defaults"
)

// EnvPrefix prefixes environment overrides, e.g. TESTRAIN_RAIN_TICK_MS.
const EnvPrefix = "TESTRAIN"

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"force-neo":    "force_neo",
	"verbose":      "verbosity",
	"log-file":     "log_file",
	"verbose-logs": "verbose_logs",
}

// Options selects the optional layers.
type Options struct {
	// Path names a user file. Empty means DefaultPath, which may be absent;
	// an explicit path must exist.
	Path  string
	Flags *pflag.FlagSet
}

// Load merges the layers in increasing precedence and validates the result.
func Load(opts Options) (Config, error) {
	v := viper.New()
	v.SetConfigType("json")

	base, err := defaults.Config()
	if err != nil {
		return Config{}, fmt.Errorf("read embedded defaults: %w", err)
	}
	if err := v.ReadConfig(bytes.NewReader(base)); err != nil {
		return Config{}, fmt.Errorf("parse embedded defaults: %w", err)
	}

	path, explicit := opts.Path, opts.Path != ""
	if !explicit {
		if path, err = DefaultPath(); err != nil {
			path = ""
		}
	}
	if path != "" {
		if err := mergeFile(v, path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range flagKeys {
			f := opts.Flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeFile(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}
