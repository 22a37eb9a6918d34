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

package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/serverhost/serverhost/agent/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferKeepsCompleteLines(t *testing.T) {
	buffer := NewBuffer(10, nil)

	fmt.Fprint(buffer, "first\nsec")
	fmt.Fprint(buffer, "ond\r\nthird")

	assert.Equal(t, []string{"first", "second"}, buffer.Lines())

	buffer.Flush()
	assert.Equal(t, []string{"first", "second", "third"}, buffer.Lines())
	assert.Equal(t, "first\nsecond\nthird", buffer.String())
}

func TestBufferDropsOldestLines(t *testing.T) {
	buffer := NewBuffer(3, nil)
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(buffer, "line %d\n", i)
	}

	assert.Equal(t, []string{"line 3", "line 4", "line 5"}, buffer.Lines())
}

func TestBufferStripsEscapeSequences(t *testing.T) {
	buffer := NewBuffer(5, nil)
	fmt.Fprint(buffer, "\033[32minfo\033[0m: Now listening on: http://localhost:5001\n")
	// sequence split across writes
	fmt.Fprint(buffer, "\033[1")
	fmt.Fprint(buffer, ";31mfail\033[0m\n")

	assert.Equal(t, []string{"info: Now listening on: http://localhost:5001", "fail"}, buffer.Lines())
}

func TestBufferStreamsLines(t *testing.T) {
	logger := log.NewMockLog()
	buffer := NewBuffer(5, logger)

	fmt.Fprint(buffer, "hello\nworld\n")

	logger.AssertNumberOfCalls(t, "Info", 2)
}

func TestBufferConcurrentWriters(t *testing.T) {
	buffer := NewBuffer(1000, nil)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				fmt.Fprintf(buffer, "writer %d line %d\n", i, j)
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, buffer.Lines(), 200)
}

func TestBufferSplitsOverlongPartialLine(t *testing.T) {
	buffer := NewBuffer(5, nil)
	long := make([]byte, maxPartialLine+10)
	for i := range long {
		long[i] = 'x'
	}
	buffer.Write(long)

	require.Len(t, buffer.Lines(), 1)
	assert.Len(t, buffer.Lines()[0], maxPartialLine+10)
}

func TestRecentPrefersOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	require.NoError(t, os.WriteFile(path, []byte("a\n\033[33mb\033[0m\nc\n"), 0600))

	buffer := NewBuffer(5, nil)
	fmt.Fprint(buffer, "ignored\n")

	assert.Equal(t, []string{"b", "c"}, Recent(buffer, path, 2))
	assert.Equal(t, []string{}, Recent(buffer, filepath.Join(t.TempDir(), "missing.log"), 2))
	assert.Equal(t, []string{"ignored"}, Recent(buffer, "", 2))
	assert.Equal(t, []string{}, Recent(nil, "", 2))
}
