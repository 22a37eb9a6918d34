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

package launcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/serverhost/serverhost/agent/launchspec"
)

// SpawnError is a failure to start the server process at all. It is never retried.
type SpawnError struct {
	Executable string
	Err        error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start %v, %v", e.Executable, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// LaunchError describes a failed launch attempt with what is needed to correlate it with other jobs
// on the host.
type LaunchError struct {
	Kind         launchspec.Kind
	ConfigHash   string
	Port         int
	Elapsed      time.Duration
	State        State
	RecentOutput []string
	Err          error
}

func (e *LaunchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v server (config %v, port %v) failed after %v: %v", e.Kind, e.ConfigHash, e.Port, e.Elapsed, e.Err)
	if len(e.RecentOutput) > 0 {
		b.WriteString("\nrecent server output:")
		for _, line := range e.RecentOutput {
			b.WriteString("\n  ")
			b.WriteString(line)
		}
	}
	return b.String()
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}
