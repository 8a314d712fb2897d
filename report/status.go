// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: report/status.go
// Summary: Maps phase results to the single-glyph letters drawn on screen.

package report

import (
	"path"
	"path/filepath"
	"strings"
)

// Result letters.
const (
	LetterPassed         = '.'
	LetterSkipped        = 's'
	LetterFailed         = 'F'
	LetterError          = 'f'
	LetterExpectedFail   = 'x'
	LetterUnexpectedPass = 'X'
	LetterRerun          = 'R'
	LetterUnknown        = '?'
)

// Letter returns the glyph for a phase result.
func Letter(r PhaseResult) rune {
	if r.ExpectedFailure {
		switch r.Outcome {
		case Skipped:
			return LetterExpectedFail
		case Passed:
			return LetterUnexpectedPass
		}
	}
	switch r.Outcome {
	case Passed:
		return LetterPassed
	case Skipped:
		return LetterSkipped
	case Failed:
		if r.Phase != PhaseCall {
			return LetterError
		}
		return LetterFailed
	case Rerun:
		return LetterRerun
	default:
		return LetterUnknown
	}
}

// Recorded reports whether a result belongs in the run history: call phase
// results and skips, never teardown.
func Recorded(r PhaseResult) bool {
	if r.Phase == PhaseTeardown {
		return false
	}
	return r.Phase == PhaseCall || r.Outcome == Skipped
}

// Drawn reports whether a result produces a glyph on the grid. Passing setup
// and teardown phases are silent.
func Drawn(r PhaseResult) bool {
	if r.Phase == PhaseCall {
		return true
	}
	return r.Outcome != Passed
}

var labelReplacer = strings.NewReplacer(
	"_", "|",
	"-", "|",
	"[", "▄",
	"]", "▀",
)

// Label turns a node ID into the compact text drawn on screen: the base name
// of the file or package without test affixes, joined to the test name by ▒.
func Label(nodeID string) string {
	file, test, hasTest := strings.Cut(nodeID, NodeSeparator)
	name := path.Base(filepath.ToSlash(file))
	if name == "." || name == "/" {
		name = ""
	}
	for _, suffix := range []string{"_test.go", ".go", ".py"} {
		if trimmed, ok := strings.CutSuffix(name, suffix); ok {
			name = trimmed
			break
		}
	}
	name = strings.TrimPrefix(name, "test_")
	if hasTest {
		name += "▒" + test
	}
	return labelReplacer.Replace(name)
}
