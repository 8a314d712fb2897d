// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/translate.go
// Summary: Converts test2json events into reporter lifecycle events and keeps failing output.

package protocol

import (
	"strings"

	"github.com/framegrace/testrain/report"
)

// Failure is a failed test or package with the output it produced.
type Failure struct {
	NodeID string
	Output string
}

// Translator maps test2json events to report events. It is not safe for
// concurrent use.
type Translator struct {
	started    bool
	failedPkgs map[string]bool
	outputs    map[string]*strings.Builder
	failures   []Failure
	counts     map[report.Outcome]int
}

func NewTranslator() *Translator {
	return &Translator{
		failedPkgs: make(map[string]bool),
		outputs:    make(map[string]*strings.Builder),
		counts:     make(map[report.Outcome]int),
	}
}

// Translate returns the report events for ev, in delivery order.
func (t *Translator) Translate(ev Event) []report.Event {
	var out []report.Event
	if !t.started {
		t.started = true
		out = append(out, report.CollectionStarted{})
	}

	pkg := ev.Package
	if pkg == "" {
		pkg = importPackage(ev.ImportPath)
	}
	id := report.NodeID(pkg, ev.Test)

	switch {
	case ev.Action == ActionOutput || ev.Action == ActionBuildOutput:
		t.output(id).WriteString(ev.Output)
	case ev.Action == ActionRun:
		if ev.IsTest() {
			out = append(out, report.TestStarted{NodeID: id})
		}
	case ev.Terminal():
		if ev.IsTest() {
			outcome := outcomeOf(ev.Action)
			t.counts[outcome]++
			if outcome == report.Failed {
				t.failedPkgs[pkg] = true
				t.fail(id)
			}
			delete(t.outputs, id)
			out = append(out, report.PhaseResult{NodeID: id, Outcome: outcome, Phase: report.PhaseCall})
			break
		}
		if ev.Action == ActionFail && !t.failedPkgs[pkg] {
			// The package failed without a failing test: build error, panic
			// in TestMain or a timeout.
			t.failedPkgs[pkg] = true
			t.counts[report.Failed]++
			t.fail(id)
			if b := importPackage(ev.FailedBuild); b != "" && b != pkg && !t.failedPkgs[b] {
				t.failedPkgs[b] = true
				t.fail(b)
			}
			out = append(out, report.PhaseResult{NodeID: pkg, Outcome: report.Failed, Phase: report.PhaseSetup})
		}
		delete(t.outputs, pkg)
	case ev.Action == ActionBuildFail:
		if !t.failedPkgs[pkg] {
			t.failedPkgs[pkg] = true
			t.counts[report.Failed]++
			t.fail(id)
			out = append(out, report.PhaseResult{NodeID: pkg, Outcome: report.Failed, Phase: report.PhaseSetup})
		}
	}
	return out
}

// Finish returns the events closing the run.
func (t *Translator) Finish() []report.Event {
	var out []report.Event
	if !t.started {
		t.started = true
		out = append(out, report.CollectionStarted{})
	}
	return append(out, report.RunFinished{})
}

// Failures returns failed tests and packages in the order they failed.
func (t *Translator) Failures() []Failure {
	return append([]Failure(nil), t.failures...)
}

// Count returns how many tests ended with outcome. Package-level failures
// count as failed.
func (t *Translator) Count(outcome report.Outcome) int {
	return t.counts[outcome]
}

func (t *Translator) output(id string) *strings.Builder {
	b, ok := t.outputs[id]
	if !ok {
		b = &strings.Builder{}
		t.outputs[id] = b
	}
	return b
}

func (t *Translator) fail(id string) {
	var text string
	if b, ok := t.outputs[id]; ok {
		text = b.String()
		delete(t.outputs, id)
	}
	t.failures = append(t.failures, Failure{NodeID: id, Output: text})
}

// importPackage strips the test variant suffix from a build import path, as in
// "example.com/p [example.com/p.test]".
func importPackage(path string) string {
	pkg, _, _ := strings.Cut(path, " [")
	return pkg
}

func outcomeOf(a Action) report.Outcome {
	switch a {
	case ActionPass:
		return report.Passed
	case ActionSkip:
		return report.Skipped
	case ActionFail:
		return report.Failed
	default:
		return report.OutcomeUnknown
	}
}
