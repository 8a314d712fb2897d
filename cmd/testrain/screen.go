// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/testrain/screen.go
// Summary: Terminal detection and the tcell display with its input pump.

package main

import (
	"context"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/framegrace/testrain/surface"
)

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// openScreen returns a display opener for the reporter. The screen holds the
// terminal in raw mode, so Ctrl-C arrives as a key event and is turned into
// cancel.
func openScreen(cancel context.CancelFunc) func() (surface.Display, error) {
	return func() (surface.Display, error) {
		t, err := surface.OpenTcell(tcell.NewScreen)
		if err != nil {
			return nil, err
		}
		go pump(t, cancel)
		return t, nil
	}
}

func pump(t *surface.Tcell, cancel context.CancelFunc) {
	screen := t.Underlying()
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			// Fini was called.
			return
		case *tcell.EventResize:
			t.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				cancel()
			}
		}
	}
}
