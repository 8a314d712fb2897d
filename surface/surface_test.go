// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: surface/surface_test.go
// Summary: Exercises bounds rules, the memory surface and the tcell adapter.
// Usage: Executed during `go test` to guard against regressions.

package surface

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestCanWriteBounds(t *testing.T) {
	s := NewMemory(3, 4)
	cases := []struct {
		row, col int
		want     bool
	}{
		{0, 0, true},
		{2, 2, true},
		{1, 3, true},
		{2, 3, false}, // bottom-right
		{3, 0, false},
		{0, 4, false},
		{-1, 0, false},
		{0, -1, false},
	}
	for _, tc := range cases {
		if got := CanWrite(s, tc.row, tc.col); got != tc.want {
			t.Fatalf("CanWrite(%d,%d) = %v, want %v", tc.row, tc.col, got, tc.want)
		}
	}
}

func TestPutDropsOutOfBoundsWrites(t *testing.T) {
	s := NewMemory(2, 2)
	if Put(s, 5, 5, 'x', Active) {
		t.Fatalf("expected out-of-bounds put to be dropped")
	}
	if Put(s, 1, 1, 'x', Active) {
		t.Fatalf("expected bottom-right put to be dropped")
	}
	if !Put(s, 0, 1, 'x', Active) {
		t.Fatalf("expected in-bounds put to succeed")
	}
	if s.Writes() != 1 {
		t.Fatalf("expected 1 write, got %d", s.Writes())
	}
}

func TestClearColumnSkipsUnwritableCells(t *testing.T) {
	s := NewMemory(3, 2)
	for row := 0; row < 3; row++ {
		s.SetCell(row, 1, 'x', Plain)
	}
	ClearColumn(s, 1)
	if got := s.Column(1); got != "  x" {
		t.Fatalf("expected bottom-right cell untouched, got %q", got)
	}
	ClearColumn(s, 7)
}

func TestMemoryResizeKeepsOverlap(t *testing.T) {
	s := NewMemory(2, 2)
	s.SetCell(0, 0, 'a', Plain)
	s.SetCell(1, 1, 'b', Plain)
	s.Resize(1, 3)
	if rows, cols := s.Size(); rows != 1 || cols != 3 {
		t.Fatalf("unexpected size %dx%d", rows, cols)
	}
	if got := s.Row(0); got != "a  " {
		t.Fatalf("unexpected row after shrink %q", got)
	}
	s.Resize(2, 3)
	if got := s.Cell(1, 1).Glyph; got != ' ' {
		t.Fatalf("expected cleared cell after regrow, got %q", got)
	}
}

func TestStyleTcell(t *testing.T) {
	fg, _, attrs := Style{Color: ColorBrightGreen, Attr: Bold}.Tcell().Decompose()
	if fg != tcell.PaletteColor(10) {
		t.Fatalf("expected palette colour 10, got %v", fg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Fatalf("expected bold attribute")
	}
	fg, _, attrs = Plain.Tcell().Decompose()
	if fg != tcell.ColorDefault || attrs&tcell.AttrBold != 0 {
		t.Fatalf("expected plain default style, got fg=%v attrs=%v", fg, attrs)
	}
}

func TestPaletteColorRange(t *testing.T) {
	if PaletteColor(-3) != ColorDefault || PaletteColor(300) != ColorDefault {
		t.Fatalf("expected out-of-range palette index to map to default")
	}
	if ColorGreen.Index() != 2 {
		t.Fatalf("expected green index 2, got %d", ColorGreen.Index())
	}
}

func TestTcellSurfaceWritesThroughSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(6, 4)
	s := NewTcell(screen)
	defer s.Fini()

	rows, cols := s.Size()
	if rows != 4 || cols != 6 {
		t.Fatalf("expected 4x6, got %dx%d", rows, cols)
	}
	Put(s, 2, 5, 'q', Style{Color: ColorGreen})
	s.SetCell(10, 10, 'z', Plain)
	s.Show()

	mainc, _, style, _ := screen.GetContent(5, 2)
	if mainc != 'q' {
		t.Fatalf("expected 'q' at x=5,y=2, got %q", mainc)
	}
	if fg, _, _ := style.Decompose(); fg != tcell.PaletteColor(2) {
		t.Fatalf("expected green foreground, got %v", fg)
	}

	s.Fini()
	s.Fini()
}
