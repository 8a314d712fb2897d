// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/testrain/logging.go
// Summary: Diagnostic logger setup; the terminal belongs to the display so logs go to a file.

package main

import (
	"fmt"
	"io"
	"os"

	"pkt.systems/pslog"

	"github.com/framegrace/testrain/config"
)

func newLogger(cfg config.Config) (pslog.Logger, func(), error) {
	level := pslog.InfoLevel
	if cfg.VerboseLogs {
		level = pslog.DebugLevel
	}
	var w io.Writer = io.Discard
	closeFn := func() {}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}
	logger := pslog.NewWithOptions(w, pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		VerboseFields: true,
		MinLevel:      level,
	})
	return logger, closeFn, nil
}
