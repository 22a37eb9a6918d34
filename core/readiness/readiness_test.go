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
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/serverhost/serverhost/agent/context"
	"github.com/serverhost/serverhost/agent/launchspec"
	"github.com/serverhost/serverhost/core/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func probeSpec(t *testing.T, baseURL string, timeout time.Duration, paths ...string) launchspec.Spec {
	b := launchspec.NewBuilder(launchspec.External).
		WithBaseURL(baseURL).
		WithStartupTimeout(timeout).
		WithInitialDelay(0).
		WithPollInterval(10 * time.Millisecond).
		WithHeadless(false)
	if len(paths) > 0 {
		b.WithHealthChecks(paths...)
	}
	spec, err := b.Build()
	require.NoError(t, err)
	return spec
}

func newTestProbe(collector *metrics.Collector) *HTTPProbe {
	return NewHTTPProbe(context.NewMockDefault(), collector)
}

func TestWaitUntilReadyAfterTwoUnavailableResponses(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&requests, 1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	collector := metrics.NewCollector("test")
	err := newTestProbe(collector).WaitUntilReady(probeSpec(t, server.URL, 5*time.Second), nil)

	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&requests))
}

func TestWaitUntilReadyTimesOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	start := time.Now()
	err := newTestProbe(nil).WaitUntilReady(probeSpec(t, server.URL, 50*time.Millisecond), nil)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout))
	var timeoutErr *TimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	assert.Equal(t, server.URL+"/", timeoutErr.URL)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	assert.Less(t, elapsed, time.Second)
}

func TestWaitUntilReadySwallowsConnectionErrors(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	address := listener.Addr().String()
	listener.Close()

	spec := probeSpec(t, "http://"+address, 2*time.Second)
	done := make(chan error, 1)
	go func() { done <- newTestProbe(nil).WaitUntilReady(spec, nil) }()

	// start serving after the first failed attempts
	time.Sleep(50 * time.Millisecond)
	listener, err = net.Listen("tcp", address)
	require.NoError(t, err)
	server := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})}
	go server.Serve(listener)
	defer server.Close()

	assert.NoError(t, <-done)
}

func TestWaitUntilReadyRequiresAllPathsInOneCycle(t *testing.T) {
	var healthCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&healthCalls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
		}
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	err := newTestProbe(nil).WaitUntilReady(probeSpec(t, server.URL, 5*time.Second, "/", "/health"), nil)
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&healthCalls))
}

func TestRedirectIsNotReady(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/login", http.StatusFound)
		}
	}))
	defer server.Close()

	assert.False(t, newTestProbe(nil).IsReady(probeSpec(t, server.URL, time.Second)))
}

func TestIsReady(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	spec := probeSpec(t, server.URL, time.Second)

	assert.True(t, newTestProbe(nil).IsReady(spec))
	server.Close()
	assert.False(t, newTestProbe(nil).IsReady(spec))
}

func TestWaitUntilReadyStopsWhenProcessExits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	abort := make(chan struct{})
	time.AfterFunc(30*time.Millisecond, func() { close(abort) })

	start := time.Now()
	err := newTestProbe(nil).WaitUntilReady(probeSpec(t, server.URL, 10*time.Second), abort)

	assert.True(t, errors.Is(err, ErrProcessExited))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestWaitUntilReadyHonoursInitialDelay(t *testing.T) {
	var first atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		first.CompareAndSwap(0, time.Now().UnixNano())
	}))
	defer server.Close()

	spec, err := launchspec.NewBuilder(launchspec.External).
		WithBaseURL(server.URL).
		WithInitialDelay(60 * time.Millisecond).
		WithPollInterval(10 * time.Millisecond).
		WithStartupTimeout(5 * time.Second).
		Build()
	require.NoError(t, err)

	start := time.Now()
	require.NoError(t, newTestProbe(nil).WaitUntilReady(spec, nil))
	assert.GreaterOrEqual(t, time.Unix(0, first.Load()).Sub(start), 60*time.Millisecond)
}
