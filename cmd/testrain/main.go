// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/testrain/main.go
// Summary: Entry point for the testrain CLI.
// Usage: testrain [flags] [packages] [go test flags]; or `go test -json ./... | testrain --stdin`.
// Notes: The process exits with the status of the underlying go test run.

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"pkt.systems/psi"
	"pkt.systems/pslog"

	"github.com/framegrace/testrain/config"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	root := newRootCmd()
	root.SetArgs(os.Args[1:])

	if err := root.ExecuteContext(ctx); err != nil {
		var code exitCode
		if errors.As(err, &code) {
			return int(code)
		}
		fmt.Fprintf(os.Stderr, "testrain: %v\n", err)
		pslog.Ctx(ctx).Error("testrain failed", "err", err)
		return 1
	}
	return 0
}

// exitCode carries a non-zero status without an error message.
type exitCode int

func (c exitCode) Error() string {
	return fmt.Sprintf("exit status %d", int(c))
}

type rootFlags struct {
	configPath string
	stdin      bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	root := &cobra.Command{
		Use:           "testrain [packages] [go test flags]",
		Short:         "Run go test with a green-on-black progress display",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.Options{Path: flags.configPath, Flags: cmd.Flags()})
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger, closeLog, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer closeLog()
			ctx := pslog.ContextWithLogger(cmd.Context(), logger)
			log.SetOutput(pslog.LogLogger(logger).Writer())
			log.SetFlags(0)

			r := &runner{
				cfg:    cfg,
				stdin:  flags.stdin,
				args:   args,
				in:     cmd.InOrStdin(),
				out:    cmd.OutOrStdout(),
				errOut: cmd.ErrOrStderr(),
				isTTY:  stdoutIsTerminal,
				open:   openScreen,
			}
			code, err := r.run(ctx)
			if err != nil {
				return err
			}
			if code != 0 {
				return exitCode(code)
			}
			return nil
		},
	}

	f := root.Flags()
	// Everything after the first package pattern belongs to go test.
	f.SetInterspersed(false)
	f.Bool("force-neo", false, "use the visual display even when stdout is not a terminal")
	f.CountP("verbose", "v", "raise verbosity; -v switches to the rain display")
	f.String("log-file", "", "write diagnostic logs to this file")
	f.Bool("verbose-logs", false, "log at debug level")
	f.StringVar(&flags.configPath, "config", "", "configuration file (default $XDG_CONFIG_HOME/testrain/testrain.json)")
	f.BoolVar(&flags.stdin, "stdin", false, "read a go test -json stream from stdin instead of running go test")
	return root
}
