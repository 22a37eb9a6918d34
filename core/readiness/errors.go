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

package readiness

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrTimeout is matched by TimeoutError.
	ErrTimeout = errors.New("server did not become ready")

	// ErrProcessExited is returned when the server exits while it is being probed.
	ErrProcessExited = errors.New("server process exited before it became ready")
)

// TimeoutError reports health checks that never all passed within the startup timeout.
type TimeoutError struct {
	// URL is the health check that failed last.
	URL     string
	Elapsed time.Duration
	LastErr error
}

func (e *TimeoutError) Error() string {
	if e.LastErr == nil {
		return fmt.Sprintf("%v: %v not healthy after %v", ErrTimeout, e.URL, e.Elapsed)
	}
	return fmt.Sprintf("%v: %v not healthy after %v, last result: %v", ErrTimeout, e.URL, e.Elapsed, e.LastErr)
}

// Is makes errors.Is(err, ErrTimeout) hold.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

func (e *TimeoutError) Unwrap() error {
	return e.LastErr
}

// StatusError is the result of a health check answering with a non 2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v returned status %v", e.URL, e.StatusCode)
}
