// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: report/reporter.go
// Summary: Visual reporter composing the grid cursor, the rain effect and the history replay.
// Usage: The host delivers lifecycle events to OnEvent and calls OnFatal before its own error output.

package report

import (
	"context"
	"io"
	"sync"

	"pkt.systems/pslog"

	"github.com/framegrace/testrain/grid"
	"github.com/framegrace/testrain/history"
	"github.com/framegrace/testrain/internal/effects"
	"github.com/framegrace/testrain/surface"
)

// DefaultSummaryWidth is used for the history replay when the display never
// reported a usable width.
const DefaultSummaryWidth = 80

// Options configures a Reporter for one run.
type Options struct {
	// Enabled turns the visual mode on. A disabled Reporter ignores events.
	Enabled bool
	// Verbosity above zero selects the rain effect instead of the grid.
	Verbosity int
	// Rain tunes the rain effect.
	Rain effects.Options
	// Open acquires the display when the run starts.
	Open func() (surface.Display, error)
	// Out receives the history replay after the display is released.
	Out io.Writer
}

// Reporter draws a run on a terminal display. Events must be delivered from a
// single goroutine; Teardown and OnFatal may be called from any goroutine.
type Reporter struct {
	ctx  context.Context
	opts Options

	mu      sync.Mutex
	display surface.Display
	cursor  *grid.Cursor
	rain    *effects.Rain
	palette *grid.Palette
	current string
	started bool
	closed  bool

	history  *history.Record
	teardown sync.Once
}

// New returns a reporter for one run. The display is opened lazily on the
// first event.
func New(ctx context.Context, opts Options) *Reporter {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	return &Reporter{
		ctx:     ctx,
		opts:    opts,
		palette: grid.NewPalette(grid.DefaultColumnStyles...),
		history: history.NewRecord(),
	}
}

// History exposes the glyphs recorded so far.
func (r *Reporter) History() *history.Record {
	return r.history
}

func (r *Reporter) verbose() bool {
	return r.opts.Verbosity > 0
}

// OnEvent handles one lifecycle event.
func (r *Reporter) OnEvent(ev Event) {
	if !r.opts.Enabled {
		return
	}
	if _, ok := ev.(RunFinished); ok {
		r.Teardown()
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	if !r.started {
		r.tearUpLocked()
	}

	switch e := ev.(type) {
	case CollectionStarted:
	case TestStarted:
		r.testStartedLocked(e)
	case PhaseResult:
		r.phaseResultLocked(e)
	}
}

func (r *Reporter) tearUpLocked() {
	r.started = true
	log := pslog.Ctx(r.ctx)
	if r.opts.Open == nil {
		log.Warn("visual mode has no display")
		return
	}
	display, err := r.opts.Open()
	if err != nil {
		log.Warn("visual mode unavailable", "err", err)
		return
	}
	r.display = display
	if r.verbose() {
		r.rain = effects.NewRain(display, r.opts.Rain)
		r.rain.Start(r.ctx)
	} else {
		r.cursor = grid.NewCursor(display, r.palette)
	}
	rows, cols := display.Size()
	log.Info("visual mode started", "rows", rows, "cols", cols, "verbosity", r.opts.Verbosity)
}

func (r *Reporter) testStartedLocked(e TestStarted) {
	if r.display == nil {
		return
	}
	if r.rain != nil {
		r.rain.Submit(Label(e.NodeID), r.palette.Next())
		return
	}
	file := FileOf(e.NodeID)
	if file == r.current {
		return
	}
	r.current = file
	r.cursor.BeginColumn(Label(file))
}

func (r *Reporter) phaseResultLocked(e PhaseResult) {
	letter := Letter(e)
	if Recorded(e) {
		r.history.Append(Label(FileOf(e.NodeID)), letter)
	}
	if r.cursor == nil || !Drawn(e) {
		return
	}
	if file := FileOf(e.NodeID); file != r.current {
		r.current = file
		r.cursor.BeginColumn(Label(file))
	}
	r.cursor.WriteResult(letter)
}

// Teardown stops the rain effect, releases the display and replays the
// history. Only the first call has an effect.
func (r *Reporter) Teardown() {
	r.teardown.Do(func() {
		r.mu.Lock()
		r.closed = true
		rain, display := r.rain, r.display
		r.mu.Unlock()

		if rain != nil {
			rain.Stop()
		}
		if display == nil {
			return
		}
		width := DefaultSummaryWidth
		if _, cols := display.Size(); cols > 0 {
			width = cols
		}
		display.Fini()

		log := pslog.Ctx(r.ctx)
		entries := r.history.Entries()
		if err := history.NewPrinter(r.opts.Out).Print(entries, width); err != nil {
			log.Warn("history replay failed", "err", err)
			return
		}
		log.Info("visual mode stopped", "files", len(entries), "width", width)
	})
}

// OnFatal restores the terminal before the host prints its own output.
func (r *Reporter) OnFatal(kind Fatal) {
	pslog.Ctx(r.ctx).Debug("reporter teardown", "reason", kind.String())
	r.Teardown()
}
