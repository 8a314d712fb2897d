// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/messages.go
// Summary: Records emitted by `go test -json` (test2json).

package protocol

import "time"

// Action enumerates the test2json actions.
type Action string

const (
	ActionStart       Action = "start"
	ActionRun         Action = "run"
	ActionPause       Action = "pause"
	ActionCont        Action = "cont"
	ActionPass        Action = "pass"
	ActionBench       Action = "bench"
	ActionFail        Action = "fail"
	ActionOutput      Action = "output"
	ActionSkip        Action = "skip"
	ActionBuildOutput Action = "build-output"
	ActionBuildFail   Action = "build-fail"
)

// Event is one line of test2json output.
type Event struct {
	Time        time.Time `json:",omitempty"`
	Action      Action
	Package     string  `json:",omitempty"`
	Test        string  `json:",omitempty"`
	Elapsed     float64 `json:",omitempty"`
	Output      string  `json:",omitempty"`
	FailedBuild string  `json:",omitempty"`
	ImportPath  string  `json:",omitempty"`
}

// IsTest reports whether the event concerns a single test rather than a
// whole package.
func (e Event) IsTest() bool {
	return e.Test != ""
}

// Terminal reports whether the action ends a test or package.
func (e Event) Terminal() bool {
	switch e.Action {
	case ActionPass, ActionFail, ActionSkip:
		return true
	}
	return false
}
