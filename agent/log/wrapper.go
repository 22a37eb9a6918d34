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

package log

import (
	"strings"
	"sync"

	"github.com/cihub/seelog"
)

// Wrapper prefixes every message with its context strings and serializes
// writes to the delegate seelog logger.
type Wrapper struct {
	context  []string
	delegate seelog.LoggerInterface
	mu       *sync.Mutex
}

// WithContext returns a logger carrying w's context followed by the given one.
func (w *Wrapper) WithContext(context ...string) T {
	combined := make([]string, 0, len(w.context)+len(context))
	combined = append(combined, w.context...)
	return &Wrapper{context: append(combined, context...), delegate: w.delegate, mu: w.mu}
}

func (w *Wrapper) format(format string) string {
	if len(w.context) == 0 {
		return format
	}
	return strings.Join(w.context, " ") + " " + format
}

func (w *Wrapper) values(v []interface{}) []interface{} {
	if len(w.context) == 0 {
		return v
	}
	prefixed := make([]interface{}, 0, len(w.context)+len(v))
	for _, c := range w.context {
		prefixed = append(prefixed, c+" ")
	}
	return append(prefixed, v...)
}

func (w *Wrapper) Tracef(format string, params ...interface{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.delegate.Tracef(w.format(format), params...)
}

func (w *Wrapper) Debugf(format string, params ...interface{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.delegate.Debugf(w.format(format), params...)
}

func (w *Wrapper) Infof(format string, params ...interface{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.delegate.Infof(w.format(format), params...)
}

func (w *Wrapper) Warnf(format string, params ...interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.delegate.Warnf(w.format(format), params...)
}

func (w *Wrapper) Errorf(format string, params ...interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.delegate.Errorf(w.format(format), params...)
}

func (w *Wrapper) Criticalf(format string, params ...interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.delegate.Criticalf(w.format(format), params...)
}

func (w *Wrapper) Trace(v ...interface{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.delegate.Trace(w.values(v)...)
}

func (w *Wrapper) Debug(v ...interface{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.delegate.Debug(w.values(v)...)
}

func (w *Wrapper) Info(v ...interface{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.delegate.Info(w.values(v)...)
}

func (w *Wrapper) Warn(v ...interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.delegate.Warn(w.values(v)...)
}

func (w *Wrapper) Error(v ...interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.delegate.Error(w.values(v)...)
}

func (w *Wrapper) Critical(v ...interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.delegate.Critical(w.values(v)...)
}

// Flush flushes all the messages in the logger.
func (w *Wrapper) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.delegate.Flush()
}

// Close flushes the logger and closes it. It cannot be used after this operation.
func (w *Wrapper) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.delegate.Close()
}
