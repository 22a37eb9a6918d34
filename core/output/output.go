// Copyright 2026 Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"). You may not
// use this file except in compliance with the License. A copy of the
// License is located at
//
// http://aws.amazon.com/apache2.0/
//
// or in the "license" file accompanying this file. This file is distributed
// on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
// either express or implied. See the License for the specific language governing
// permissions and limitations under the License.

// Package output captures what a server writes to stdout and stderr so launch failures can show it.
package output

import (
	"bytes"
	"strings"
	"sync"

	"github.com/pborman/ansi"
	"github.com/serverhost/serverhost/agent/fileutil"
	"github.com/serverhost/serverhost/agent/log"
)

// maxPartialLine bounds an unterminated line before it is kept as a line of its own.
const maxPartialLine = 16 << 10

// Buffer is an io.Writer keeping the most recent complete lines written to it, with terminal escape
// sequences removed. It is safe for concurrent writers.
type Buffer struct {
	mu       sync.Mutex
	lines    []string
	capacity int
	partial  []byte
	// stream receives every line when set.
	stream log.T
}

// NewBuffer creates a buffer holding up to capacity lines. When stream is not nil every line is also
// logged to it.
func NewBuffer(capacity int, stream log.T) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{
		lines:    make([]string, 0, capacity),
		capacity: capacity,
		stream:   stream,
	}
}

// Write splits p into lines. An unterminated tail is held until the rest of the line arrives.
func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	data := p
	for len(data) > 0 {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			b.partial = append(b.partial, data...)
			if len(b.partial) >= maxPartialLine {
				b.addLine(b.partial)
				b.partial = nil
			}
			break
		}
		line := data[:i]
		if len(b.partial) > 0 {
			line = append(b.partial, line...)
			b.partial = nil
		}
		b.addLine(line)
		data = data[i+1:]
	}
	return len(p), nil
}

// Flush keeps a pending unterminated line. Call it once the writer side is closed.
func (b *Buffer) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.partial) > 0 {
		b.addLine(b.partial)
		b.partial = nil
	}
}

// Lines returns the retained lines, oldest first.
func (b *Buffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string{}, b.lines...)
}

// String returns the retained lines joined by newlines.
func (b *Buffer) String() string {
	return strings.Join(b.Lines(), "\n")
}

func (b *Buffer) addLine(raw []byte) {
	line := Clean(raw)
	if len(b.lines) >= b.capacity {
		copy(b.lines, b.lines[1:])
		b.lines = b.lines[:len(b.lines)-1]
	}
	b.lines = append(b.lines, line)
	if b.stream != nil {
		b.stream.Info(line)
	}
}

// Clean removes terminal escape sequences and the trailing carriage return from a line. Malformed
// sequences are dropped as far as they can be recognised.
func Clean(raw []byte) string {
	stripped, _ := ansi.Strip(raw)
	return strings.TrimRight(string(stripped), "\r")
}

// Recent returns up to maxLines recent lines of server output: the tail of outputFile when the server
// wrote to a file, otherwise the lines held by buffer.
func Recent(buffer *Buffer, outputFile string, maxLines int) []string {
	if outputFile != "" {
		lines, err := fileutil.ReadTail(outputFile, maxLines)
		if err != nil {
			return []string{}
		}
		cleaned := make([]string, 0, len(lines))
		for _, line := range lines {
			cleaned = append(cleaned, Clean([]byte(line)))
		}
		return cleaned
	}
	if buffer == nil {
		return []string{}
	}
	lines := buffer.Lines()
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines
}
