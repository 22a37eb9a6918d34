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

// Package readiness polls a server's health check endpoints until they all succeed.
package readiness

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/serverhost/serverhost/agent/backoffconfig"
	agentctx "github.com/serverhost/serverhost/agent/context"
	"github.com/serverhost/serverhost/agent/launchspec"
	"github.com/serverhost/serverhost/agent/log"
	"github.com/serverhost/serverhost/agent/times"
	"github.com/serverhost/serverhost/core/metrics"
)

// maxDrainBytes bounds how much of a response body is read so the connection can be reused.
const maxDrainBytes = 64 << 10

// Probe decides whether a server is serving traffic.
type Probe interface {
	// WaitUntilReady blocks until every health check of spec passes in the same cycle, the startup
	// timeout elapses, or abort is closed.
	WaitUntilReady(spec launchspec.Spec, abort <-chan struct{}) error
	// IsReady runs a single cycle of health checks.
	IsReady(spec launchspec.Spec) bool
}

// HTTPProbe issues GET requests; any 2xx status passes and everything else, including network errors
// and redirects, means not ready yet.
type HTTPProbe struct {
	log     log.T
	clock   times.Clock
	client  *http.Client
	metrics *metrics.Collector
}

// NewHTTPProbe creates a probe whose requests time out after the configured request timeout.
func NewHTTPProbe(ctx agentctx.T, collector *metrics.Collector) *HTTPProbe {
	timeout := time.Duration(ctx.AppConfig().Probe.RequestTimeoutMillis) * time.Millisecond
	return &HTTPProbe{
		log:     ctx.With("[ReadinessProbe]").Log(),
		clock:   ctx.Clock(),
		client:  newClient(timeout),
		metrics: collector,
	}
}

func newClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// WaitUntilReady waits the initial delay, then runs a cycle of checks every poll interval.
func (p *HTTPProbe) WaitUntilReady(spec launchspec.Spec, abort <-chan struct{}) error {
	start := p.clock.Now()
	urls := spec.HealthURLs()

	ctx, cancel := context.WithTimeout(context.Background(), spec.StartupTimeout())
	defer cancel()
	aborted := make(chan struct{})
	go func() {
		select {
		case <-abort:
			close(aborted)
			cancel()
		case <-ctx.Done():
		}
	}()

	lastURL := firstOf(urls)
	var lastErr error
	timedOut := func() error {
		select {
		case <-aborted:
			return fmt.Errorf("%w after %v", ErrProcessExited, times.Since(p.clock, start))
		default:
		}
		return &TimeoutError{URL: lastURL, Elapsed: times.Since(p.clock, start), LastErr: lastErr}
	}

	if delay := spec.InitialDelay(); delay > 0 {
		p.log.Debugf("Waiting %v before probing %v", delay, spec.BaseURL())
		select {
		case <-p.clock.After(delay):
		case <-ctx.Done():
			return timedOut()
		}
	}

	policy, err := backoffconfig.GetPollingBackoff(ctx, spec.PollInterval())
	if err != nil {
		return err
	}

	attempts := 0
	operation := func() error {
		attempts++
		url, err := p.cycle(ctx, urls)
		p.metrics.ReadinessAttempt(err == nil)
		// a request cut short by the deadline says nothing about the server
		if err != nil && (ctx.Err() == nil || lastErr == nil) {
			lastURL, lastErr = url, err
		}
		return err
	}
	notify := func(err error, next time.Duration) {
		p.log.Tracef("Server %v not ready (attempt %v), %v", spec.BaseURL(), attempts, err)
	}

	if err = backoff.RetryNotify(operation, policy, notify); err != nil {
		if ctx.Err() != nil {
			return timedOut()
		}
		return err
	}
	p.log.Infof("Server %v ready after %v (%v attempts)", spec.BaseURL(), times.Since(p.clock, start), attempts)
	return nil
}

// IsReady runs one cycle of health checks bounded by the request timeout.
func (p *HTTPProbe) IsReady(spec launchspec.Spec) bool {
	_, err := p.cycle(context.Background(), spec.HealthURLs())
	return err == nil
}

// cycle checks every url in turn and stops at the first one that fails, returning it.
func (p *HTTPProbe) cycle(ctx context.Context, urls []string) (string, error) {
	for _, url := range urls {
		if err := p.check(ctx, url); err != nil {
			return url, err
		}
	}
	return "", nil
}

func (p *HTTPProbe) check(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("invalid health check url %v, %v", url, err))
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	return nil
}

func firstOf(urls []string) string {
	if len(urls) == 0 {
		return ""
	}
	return urls[0]
}
