// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Typed testrain configuration and its validation.

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/framegrace/testrain/internal/effects"
)

const configName = "testrain.json"

var (
	ErrTickTooSlow = errors.New("config: rain.tick_ms must be positive and not exceed rain.speed_min_ms")
	ErrSpeedRange  = errors.New("config: rain.speed_min_ms must be below rain.speed_max_ms")
	ErrSizeRange   = errors.New("config: rain sizes must satisfy 1 <= size_min <= size_max")
)

// Config is the resolved configuration after all layers are merged.
type Config struct {
	ForceNeo    bool       `mapstructure:"force_neo"`
	Verbosity   int        `mapstructure:"verbosity"`
	LogFile     string     `mapstructure:"log_file"`
	VerboseLogs bool       `mapstructure:"verbose_logs"`
	Rain        RainConfig `mapstructure:"rain"`
}

// RainConfig tunes the verbose-mode animation.
type RainConfig struct {
	TickMS     int `mapstructure:"tick_ms"`
	SpeedMinMS int `mapstructure:"speed_min_ms"`
	SpeedMaxMS int `mapstructure:"speed_max_ms"`
	SizeMin    int `mapstructure:"size_min"`
	SizeMax    int `mapstructure:"size_max"`
}

// Validate checks the animator ranges. A blob may never move faster than
// the tick that drives it.
func (c Config) Validate() error {
	r := c.Rain
	if r.TickMS <= 0 || r.TickMS > r.SpeedMinMS {
		return fmt.Errorf("%w (tick %dms, speed_min %dms)", ErrTickTooSlow, r.TickMS, r.SpeedMinMS)
	}
	if r.SpeedMinMS >= r.SpeedMaxMS {
		return fmt.Errorf("%w (%dms >= %dms)", ErrSpeedRange, r.SpeedMinMS, r.SpeedMaxMS)
	}
	if r.SizeMin < 1 || r.SizeMin > r.SizeMax {
		return fmt.Errorf("%w (%d..%d)", ErrSizeRange, r.SizeMin, r.SizeMax)
	}
	return nil
}

// RainOptions converts the rain section for the animator.
func (c Config) RainOptions() effects.Options {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	return effects.Options{
		Tick:     ms(c.Rain.TickMS),
		SpeedMin: ms(c.Rain.SpeedMinMS),
		SpeedMax: ms(c.Rain.SpeedMaxMS),
		SizeMin:  c.Rain.SizeMin,
		SizeMax:  c.Rain.SizeMax,
	}
}
