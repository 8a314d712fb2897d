// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/blob.go
// Summary: A single falling label of the rain effect.

package effects

import (
	"time"

	"github.com/framegrace/testrain/surface"
)

// blob is a label revealed one glyph per step down a column, followed by a
// tail of size cells before it is erased.
type blob struct {
	label    []rune
	column   int
	style    surface.Style
	speed    time.Duration
	size     int
	head     int
	lastDraw time.Time
}

func newBlob(label []rune, column int, style surface.Style, speed time.Duration, size int, now time.Time) *blob {
	return &blob{
		label:  label,
		column: column,
		style:  style,
		speed:  speed,
		size:   size,
		// Backdate so the first tick draws immediately.
		lastDraw: now.Add(-speed),
	}
}

// ready reports whether the blob's speed gate has elapsed.
func (b *blob) ready(now time.Time) bool {
	return now.Sub(b.lastDraw) >= b.speed
}

// tail is the row that has scrolled past the blob's trailing edge.
func (b *blob) tail() int {
	return b.head - b.size
}

// done reports whether the trailing edge has passed the end of the label.
func (b *blob) done() bool {
	return b.head-b.size >= len(b.label)
}

// advance draws the two-cell trail and moves the head one row down. It
// returns true once the blob can be removed.
func (b *blob) advance(s surface.Surface, now time.Time) bool {
	trail := [2]struct {
		row   int
		style surface.Style
	}{
		{b.head - 1, b.style},
		{b.head, surface.Active},
	}
	for _, c := range trail {
		if c.row < 0 || c.row >= len(b.label) {
			continue
		}
		surface.Put(s, c.row, b.column, b.label[c.row], c.style)
	}
	b.head++
	b.lastDraw = now
	return b.done()
}
