// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/testrain/run.go
// Summary: Drives one run: event source, translation, reporter and summary.

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"slices"
	"time"

	"pkt.systems/pslog"

	"github.com/framegrace/testrain/config"
	"github.com/framegrace/testrain/protocol"
	"github.com/framegrace/testrain/report"
	"github.com/framegrace/testrain/surface"
)

// interruptedCode is reported when the run is cancelled, as a shell would.
const interruptedCode = 130

// sink receives translated events plus the raw output text.
type sink interface {
	report.Consumer
	Output(text string)
}

type runner struct {
	cfg    config.Config
	stdin  bool
	args   []string
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	isTTY  func() bool
	open   func(cancel context.CancelFunc) func() (surface.Display, error)
}

func (r *runner) run(parent context.Context) (int, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	logger := pslog.Ctx(ctx)
	start := time.Now()

	enabled := r.cfg.ForceNeo || (r.isTTY != nil && r.isTTY())
	logger.Info("run starting", "visual", enabled, "verbosity", r.cfg.Verbosity, "stdin", r.stdin)

	// go test stderr would tear the display; hold it until teardown.
	var held bytes.Buffer
	stderr := r.errOut
	var s sink
	if enabled {
		stderr = &held
		s = visualSink{report.New(ctx, report.Options{
			Enabled:   true,
			Verbosity: r.cfg.Verbosity,
			Rain:      r.cfg.RainOptions(),
			Open:      r.open(cancel),
			Out:       r.out,
		})}
	} else {
		s = newPlain(r.out)
	}

	src, wait, err := r.source(ctx, stderr)
	if err != nil {
		return 0, err
	}

	tr := protocol.NewTranslator()
	events := decode(ctx, src)
	var decodeErr error
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case d, ok := <-events:
			if !ok || errors.Is(d.err, io.EOF) {
				break loop
			}
			if d.err != nil {
				decodeErr = d.err
				break loop
			}
			s.Output(d.ev.Output)
			for _, out := range tr.Translate(d.ev) {
				s.OnEvent(out)
			}
		}
	}
	// Errors caused by closing the source on cancel are interrupts.
	interrupted := ctx.Err() != nil
	if interrupted {
		decodeErr = nil
	}

	switch {
	case decodeErr != nil:
		logger.Error("event stream failed", "err", decodeErr)
		s.OnFatal(report.InternalError)
		cancel()
	case interrupted:
		logger.Info("run interrupted")
		s.OnFatal(report.KeyboardInterrupt)
	default:
		for _, out := range tr.Finish() {
			s.OnEvent(out)
		}
	}
	s.OnFatal(report.Summary)

	code := wait()
	if held.Len() > 0 {
		_, _ = r.errOut.Write(held.Bytes())
	}
	if err := writeSummary(r.out, tr, time.Since(start)); err != nil {
		logger.Warn("summary write failed", "err", err)
	}

	switch {
	case decodeErr != nil:
		return 0, fmt.Errorf("read test events: %w", decodeErr)
	case interrupted:
		return interruptedCode, nil
	case code == 0 && tr.Count(report.Failed) > 0:
		code = 1
	}
	logger.Info("run finished", "exit", code, "elapsed", time.Since(start))
	return code, nil
}

// source returns the event stream and a function reporting the exit status
// once the stream is drained.
func (r *runner) source(ctx context.Context, stderr io.Writer) (io.Reader, func() int, error) {
	if r.stdin {
		// The display holds the terminal in raw mode, so an interrupt only
		// arrives as cancel; closing stdin releases the blocked reader.
		if c, ok := r.in.(io.Closer); ok {
			context.AfterFunc(ctx, func() { _ = c.Close() })
		}
		return r.in, func() int { return 0 }, nil
	}
	args := goTestArgs(r.args)
	cmd := exec.CommandContext(ctx, "go", args...)
	cmd.Stderr = stderr
	cmd.WaitDelay = 5 * time.Second
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("go test stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("start go test: %w", err)
	}
	pslog.Ctx(ctx).Debug("go test started", "args", args, "pid", cmd.Process.Pid)
	wait := func() int {
		err := cmd.Wait()
		var exitErr *exec.ExitError
		switch {
		case err == nil:
			return 0
		case errors.As(err, &exitErr) && exitErr.ExitCode() > 0:
			return exitErr.ExitCode()
		default:
			pslog.Ctx(ctx).Warn("go test wait failed", "err", err)
			return 1
		}
	}
	return stdout, wait, nil
}

type decoded struct {
	ev  protocol.Event
	err error
}

// decode reads src on its own goroutine so the caller can stop waiting on
// cancel. The channel closes after the first error, including io.EOF.
func decode(ctx context.Context, src io.Reader) <-chan decoded {
	out := make(chan decoded)
	go func() {
		defer close(out)
		dec := protocol.NewDecoder(src)
		for {
			ev, err := dec.Next()
			select {
			case out <- decoded{ev: ev, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return out
}

func goTestArgs(user []string) []string {
	if len(user) == 0 {
		user = []string{"./..."}
	}
	args := []string{"test"}
	if !slices.Contains(user, "-json") {
		args = append(args, "-json")
	}
	return append(args, user...)
}
