// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: report/events.go
// Summary: Test lifecycle events consumed by reporters.

package report

import "strings"

// NodeSeparator joins a file or package with a test name in a node ID.
const NodeSeparator = "::"

// Phase is the stage of a test a result belongs to.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseCall
	PhaseTeardown
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseCall:
		return "call"
	case PhaseTeardown:
		return "teardown"
	default:
		return "unknown"
	}
}

// Outcome is the result of one phase.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	Passed
	Skipped
	Failed
	Rerun
)

func (o Outcome) String() string {
	switch o {
	case Passed:
		return "passed"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	case Rerun:
		return "rerun"
	default:
		return "unknown"
	}
}

// Event is one of CollectionStarted, TestStarted, PhaseResult or RunFinished.
type Event interface {
	event()
}

// CollectionStarted is delivered once tests are known, before any runs.
type CollectionStarted struct{}

// TestStarted is delivered when a test begins.
type TestStarted struct {
	NodeID string
}

// PhaseResult carries the outcome of one phase of a test.
type PhaseResult struct {
	NodeID  string
	Outcome Outcome
	Phase   Phase
	// ExpectedFailure marks results of tests declared as expected to fail.
	ExpectedFailure bool
}

// RunFinished is delivered once after the last result.
type RunFinished struct{}

func (CollectionStarted) event() {}
func (TestStarted) event()       {}
func (PhaseResult) event()       {}
func (RunFinished) event()       {}

// Fatal identifies a host error path that must restore the terminal first.
type Fatal int

const (
	InternalError Fatal = iota
	KeyboardInterrupt
	Summary
)

func (f Fatal) String() string {
	switch f {
	case InternalError:
		return "internal_error"
	case KeyboardInterrupt:
		return "keyboard_interrupt"
	case Summary:
		return "summary"
	default:
		return "unknown"
	}
}

// Consumer receives the lifecycle of one run.
type Consumer interface {
	OnEvent(Event)
	Teardown()
	OnFatal(Fatal)
}

// NodeID joins a file or package with a test name.
func NodeID(file, test string) string {
	if test == "" {
		return file
	}
	return file + NodeSeparator + test
}

// FileOf returns the file or package part of a node ID.
func FileOf(nodeID string) string {
	file, _, _ := strings.Cut(nodeID, NodeSeparator)
	return file
}
