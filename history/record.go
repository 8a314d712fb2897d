// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: history/record.go
// Summary: Per-label result glyphs accumulated during a run.

package history

import (
	"sort"
	"sync"
)

// Entry is one label with its glyphs in event order.
type Entry struct {
	Label  string
	Glyphs []rune
}

// Runes returns the label followed by the glyphs.
func (e Entry) Runes() []rune {
	out := []rune(e.Label)
	return append(out, e.Glyphs...)
}

// Record maps labels to result glyphs. It is safe for concurrent use.
type Record struct {
	mu      sync.Mutex
	entries map[string][]rune
}

func NewRecord() *Record {
	return &Record{entries: make(map[string][]rune)}
}

// Append adds glyph to label's sequence.
func (r *Record) Append(label string, glyph rune) {
	r.mu.Lock()
	r.entries[label] = append(r.entries[label], glyph)
	r.mu.Unlock()
}

// Len returns the number of labels.
func (r *Record) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Entries returns a copy of the record sorted by label.
func (r *Record) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, 0, len(r.entries))
	for label, glyphs := range r.entries {
		out = append(out, Entry{Label: label, Glyphs: append([]rune(nil), glyphs...)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}
