// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: history/printer.go
// Summary: Replays the run history as vertical, colour-cycled strips after the screen is torn down.

package history

import (
	"bufio"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// EntryWidth is the number of terminal columns taken by one entry.
const EntryWidth = 2

// Printer writes entries as columns tiled across the terminal width.
type Printer struct {
	w      io.Writer
	styles []lipgloss.Style
}

// NewPrinter returns a printer writing to w. Colour is only emitted when w is
// a terminal that supports it.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w: w,
		styles: []lipgloss.Style{
			r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
			r.NewStyle().Foreground(lipgloss.Color("2")),
			r.NewStyle().Foreground(lipgloss.Color("10")),
		},
	}
}

// Print writes entries in blocks of width/EntryWidth columns. Each block is
// printed row by row until a row holds no glyph from any entry; that blank
// row is printed too.
func (p *Printer) Print(entries []Entry, width int) error {
	perBlock := width / EntryWidth
	if perBlock < 1 {
		perBlock = 1
	}
	bw := bufio.NewWriter(p.w)
	for start := 0; start < len(entries); start += perBlock {
		end := min(start+perBlock, len(entries))
		columns := make([][]rune, 0, end-start)
		for _, e := range entries[start:end] {
			columns = append(columns, e.Runes())
		}
		p.printBlock(bw, columns)
	}
	return bw.Flush()
}

func (p *Printer) printBlock(bw *bufio.Writer, columns [][]rune) {
	for row := 0; ; row++ {
		wasEntry := false
		for i, column := range columns {
			if row >= len(column) {
				bw.WriteString(strings.Repeat(" ", EntryWidth))
				continue
			}
			glyph := column[row]
			bw.WriteString(p.styles[i%len(p.styles)].Render(string(glyph)))
			if pad := EntryWidth - runewidth.RuneWidth(glyph); pad > 0 {
				bw.WriteString(strings.Repeat(" ", pad))
			}
			wasEntry = true
		}
		bw.WriteByte('\n')
		if !wasEntry {
			return
		}
	}
}
