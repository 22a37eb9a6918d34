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

// Package times provides a set of utilities related to processing time.
package times

import (
	"fmt"
	"time"
)

// Clock is an interface that can provide time related functionality.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that will receive after the given duration.
	After(time.Duration) <-chan time.Time
}

// DefaultClock implements Clock by delegating to methods in package time.
var DefaultClock = &defaultClock{}

// defaultClock implements Clock by delegating to methods in package time.
type defaultClock struct{}

// Now returns the current time.
func (defaultClock) Now() time.Time {
	return time.Now()
}

// After returns a channel that will receive after the given duration has elapsed.
func (defaultClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// Since returns the time elapsed on clock since start, rounded to milliseconds for reporting.
func Since(clock Clock, start time.Time) time.Duration {
	return clock.Now().Sub(start).Round(time.Millisecond)
}

// ToIso8601UTC converts a time into a string in Iso8601 format in UTC timezone (yyyy-MM-ddTHH:mm:ss.fffZ).
func ToIso8601UTC(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d.%03dZ", t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/1000000)
}

// WithinTolerance reports whether a and b are at most tolerance apart.
func WithinTolerance(a, b time.Time, tolerance time.Duration) bool {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}
