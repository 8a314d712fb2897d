// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/testrain/plain.go
// Summary: Event sinks for the visual and passthrough modes, and the failure summary.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/framegrace/testrain/protocol"
	"github.com/framegrace/testrain/report"
)

// visualSink drops raw output; failures are replayed from the translator.
type visualSink struct {
	*report.Reporter
}

func (visualSink) Output(string) {}

// plain passes go test output through unchanged when there is no display.
type plain struct {
	w *bufio.Writer
}

func newPlain(w io.Writer) *plain {
	return &plain{w: bufio.NewWriter(w)}
}

func (p *plain) Output(text string) {
	if text == "" {
		return
	}
	_, _ = p.w.WriteString(text)
	if strings.HasSuffix(text, "\n") {
		_ = p.w.Flush()
	}
}

func (p *plain) OnEvent(report.Event) {}

func (p *plain) Teardown() {
	_ = p.w.Flush()
}

func (p *plain) OnFatal(report.Fatal) {
	p.Teardown()
}

func writeSummary(w io.Writer, tr *protocol.Translator, elapsed time.Duration) error {
	r := lipgloss.NewRenderer(w)
	fail := r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	pass := r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	dim := r.NewStyle().Foreground(lipgloss.Color("2"))

	bw := bufio.NewWriter(w)
	for _, f := range tr.Failures() {
		fmt.Fprintf(bw, "%s %s\n", fail.Render("FAIL"), f.NodeID)
		if out := strings.TrimRight(f.Output, "\n"); out != "" {
			fmt.Fprintln(bw, out)
		}
	}

	passed, failed, skipped := tr.Count(report.Passed), tr.Count(report.Failed), tr.Count(report.Skipped)
	status := pass.Render(fmt.Sprintf("%d passed", passed))
	if failed > 0 {
		status = fail.Render(fmt.Sprintf("%d failed", failed)) + ", " + status
	}
	if skipped > 0 {
		status += ", " + dim.Render(fmt.Sprintf("%d skipped", skipped))
	}
	fmt.Fprintf(bw, "%s in %s\n", status, elapsed.Round(10*time.Millisecond))
	return bw.Flush()
}
