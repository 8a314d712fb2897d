// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/protocol_test.go
// Summary: Exercises test2json decoding and translation into reporter events.
// Usage: Executed during `go test` to guard against regressions.

package protocol

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/framegrace/testrain/report"
)

const sampleStream = `{"Time":"2025-01-02T10:00:00Z","Action":"start","Package":"example.com/a"}
{"Action":"run","Package":"example.com/a","Test":"TestOne"}
{"Action":"output","Package":"example.com/a","Test":"TestOne","Output":"=== RUN   TestOne\n"}
{"Action":"pass","Package":"example.com/a","Test":"TestOne","Elapsed":0.01}
{"Action":"run","Package":"example.com/a","Test":"TestTwo"}
{"Action":"output","Package":"example.com/a","Test":"TestTwo","Output":"    a_test.go:9: boom\n"}
{"Action":"fail","Package":"example.com/a","Test":"TestTwo","Elapsed":0.02}
{"Action":"run","Package":"example.com/a","Test":"TestThree"}
{"Action":"skip","Package":"example.com/a","Test":"TestThree"}
{"Action":"output","Package":"example.com/a","Output":"FAIL\n"}
{"Action":"fail","Package":"example.com/a","Elapsed":0.05}

# example.com/b
not json at all
{"Action":"start","Package":"example.com/b"}
{"Action":"output","Package":"example.com/b","Output":"panic: TestMain exploded\n"}
{"Action":"fail","Package":"example.com/b","Elapsed":0.01}
`

func decodeAll(t *testing.T, stream string) []Event {
	t.Helper()
	dec := NewDecoder(strings.NewReader(stream))
	var events []Event
	for {
		ev, err := dec.Next()
		if errors.Is(err, io.EOF) {
			return events
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		events = append(events, ev)
	}
}

func TestDecoderReadsJSONAndPlainLines(t *testing.T) {
	events := decodeAll(t, sampleStream)
	if len(events) != 16 {
		t.Fatalf("expected 16 events, got %d", len(events))
	}
	if events[0].Action != ActionStart || events[0].Time.IsZero() {
		t.Fatalf("unexpected first event %+v", events[0])
	}
	if events[3].Elapsed != 0.01 || !events[3].Terminal() || !events[3].IsTest() {
		t.Fatalf("unexpected pass event %+v", events[3])
	}
	plain := events[11]
	if plain.Action != ActionOutput || plain.Package != "" || plain.Output != "# example.com/b\n" {
		t.Fatalf("expected plain line as output, got %+v", plain)
	}
}

func TestDecoderRejectsOversizedLines(t *testing.T) {
	dec := NewDecoder(strings.NewReader(strings.Repeat("x", MaxLineSize+10)))
	if _, err := dec.Next(); !errors.Is(err, ErrLineTooLong) {
		t.Fatalf("expected ErrLineTooLong, got %v", err)
	}
}

func TestTranslatorProducesLifecycle(t *testing.T) {
	tr := NewTranslator()
	var got []report.Event
	for _, ev := range decodeAll(t, sampleStream) {
		got = append(got, tr.Translate(ev)...)
	}
	got = append(got, tr.Finish()...)

	want := []report.Event{
		report.CollectionStarted{},
		report.TestStarted{NodeID: "example.com/a::TestOne"},
		report.PhaseResult{NodeID: "example.com/a::TestOne", Outcome: report.Passed, Phase: report.PhaseCall},
		report.TestStarted{NodeID: "example.com/a::TestTwo"},
		report.PhaseResult{NodeID: "example.com/a::TestTwo", Outcome: report.Failed, Phase: report.PhaseCall},
		report.TestStarted{NodeID: "example.com/a::TestThree"},
		report.PhaseResult{NodeID: "example.com/a::TestThree", Outcome: report.Skipped, Phase: report.PhaseCall},
		report.PhaseResult{NodeID: "example.com/b", Outcome: report.Failed, Phase: report.PhaseSetup},
		report.RunFinished{},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d: %#v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d = %#v, want %#v", i, got[i], want[i])
		}
	}

	failures := tr.Failures()
	if len(failures) != 2 {
		t.Fatalf("expected 2 failures, got %+v", failures)
	}
	if failures[0].NodeID != "example.com/a::TestTwo" || !strings.Contains(failures[0].Output, "boom") {
		t.Fatalf("unexpected test failure %+v", failures[0])
	}
	if failures[1].NodeID != "example.com/b" || !strings.Contains(failures[1].Output, "TestMain exploded") {
		t.Fatalf("unexpected package failure %+v", failures[1])
	}
	if tr.Count(report.Passed) != 1 || tr.Count(report.Failed) != 2 || tr.Count(report.Skipped) != 1 {
		t.Fatalf("unexpected counts pass=%d fail=%d skip=%d", tr.Count(report.Passed), tr.Count(report.Failed), tr.Count(report.Skipped))
	}
}

func TestTranslatorBuildFailure(t *testing.T) {
	stream := `{"ImportPath":"example.com/c [example.com/c.test]","Action":"build-output","Output":"./c_test.go:3:1: syntax error\n"}
{"ImportPath":"example.com/c [example.com/c.test]","Action":"build-fail"}
{"Action":"start","Package":"example.com/c"}
{"Action":"output","Package":"example.com/c","Output":"FAIL\texample.com/c [build failed]\n"}
{"Action":"fail","Package":"example.com/c","FailedBuild":"example.com/c [example.com/c.test]"}
`
	tr := NewTranslator()
	var results []report.PhaseResult
	for _, ev := range decodeAll(t, stream) {
		for _, out := range tr.Translate(ev) {
			if r, ok := out.(report.PhaseResult); ok {
				results = append(results, r)
			}
		}
	}
	want := report.PhaseResult{NodeID: "example.com/c", Outcome: report.Failed, Phase: report.PhaseSetup}
	if len(results) != 1 || results[0] != want {
		t.Fatalf("expected one setup failure for the package, got %+v", results)
	}
	failures := tr.Failures()
	if len(failures) != 1 || !strings.Contains(failures[0].Output, "syntax error") {
		t.Fatalf("expected build output kept, got %+v", failures)
	}
	if tr.Count(report.Failed) != 1 {
		t.Fatalf("expected one failure counted, got %d", tr.Count(report.Failed))
	}
}

func TestTranslatorFinishOnEmptyStream(t *testing.T) {
	got := NewTranslator().Finish()
	if len(got) != 2 {
		t.Fatalf("expected collection start and run end, got %#v", got)
	}
	if _, ok := got[1].(report.RunFinished); !ok {
		t.Fatalf("expected RunFinished last, got %#v", got[1])
	}
}
