// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: surface/style.go
// Summary: Colour and emphasis attributes for surface cells.

package surface

import "github.com/gdamore/tcell/v2"

// Attribute is the emphasis applied to a cell.
type Attribute uint8

const (
	Normal Attribute = iota
	Bold
)

// Color is a terminal palette entry. The zero value leaves the terminal's
// default foreground untouched.
type Color uint16

const ColorDefault Color = 0

// PaletteColor returns the colour for a 256-colour palette index.
func PaletteColor(index int) Color {
	if index < 0 || index > 255 {
		return ColorDefault
	}
	return Color(index + 1)
}

// Index returns the palette index, or -1 for ColorDefault.
func (c Color) Index() int {
	return int(c) - 1
}

var (
	ColorGreen       = PaletteColor(2)
	ColorBrightGreen = PaletteColor(10)
)

// Style combines a colour with an emphasis attribute.
type Style struct {
	Color Color
	Attr  Attribute
}

var (
	// Active highlights the cell currently being written.
	Active = Style{Attr: Bold}
	// Plain is used for blanking cells.
	Plain = Style{}
)

// Tcell converts the style into its tcell representation.
func (s Style) Tcell() tcell.Style {
	st := tcell.StyleDefault
	if idx := s.Color.Index(); idx >= 0 {
		st = st.Foreground(tcell.PaletteColor(idx))
	}
	if s.Attr == Bold {
		st = st.Bold(true)
	}
	return st
}
