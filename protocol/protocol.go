// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/protocol.go
// Summary: Line decoder for test2json streams.
// Usage: Wrap the stdout of `go test -json` (or a saved stream) and call Next until io.EOF.

package protocol

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// MaxLineSize bounds a single test2json line.
const MaxLineSize = 4 << 20

var ErrLineTooLong = errors.New("protocol: line exceeds maximum size")

// Decoder reads test2json events. Lines that are not JSON objects, such as
// compiler output printed before a package runs, are returned as output
// events with no package.
type Decoder struct {
	sc *bufio.Scanner
}

func NewDecoder(r io.Reader) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), MaxLineSize)
	return &Decoder{sc: sc}
}

// Next returns the next event, or io.EOF at the end of the stream.
func (d *Decoder) Next() (Event, error) {
	for d.sc.Scan() {
		line := d.sc.Bytes()
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 {
			continue
		}
		if trimmed[0] == '{' {
			var ev Event
			if err := json.Unmarshal(trimmed, &ev); err == nil && ev.Action != "" {
				return ev, nil
			}
		}
		return Event{Action: ActionOutput, Output: string(line) + "\n"}, nil
	}
	if err := d.sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return Event{}, ErrLineTooLong
		}
		return Event{}, err
	}
	return Event{}, io.EOF
}
