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

// Package metrics instruments server launches, reuse decisions, readiness probing and orphan kills.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const defaultNamespace = "serverhost"

// Outcome labels.
const (
	OutcomeReady   = "ready"
	OutcomeFailed  = "failed"
	OutcomeTimeout = "timeout"
	OutcomeSuccess = "success"
	OutcomeNotYet  = "not_ready"
)

// Reuse reasons.
const (
	ReasonHealthy     = "healthy"
	ReasonDrift       = "drift"
	ReasonOtherHolder = "other_holder"
)

// Collector records engine metrics into a private registry.
// A nil *Collector is valid and records nothing.
type Collector struct {
	launches          *prometheus.CounterVec
	reuses            *prometheus.CounterVec
	readinessAttempts *prometheus.CounterVec
	orphansKilled     prometheus.Counter
	startupDuration   *prometheus.HistogramVec
	registry          *prometheus.Registry
}

// NewCollector creates a collector whose metric names are prefixed with namespace.
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = defaultNamespace
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),
	}

	c.launches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "launches_total",
			Help:      "Total number of server launch attempts",
		},
		[]string{"kind", "outcome"},
	)

	c.reuses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reuses_total",
			Help:      "Total number of times an already running server was reused",
		},
		[]string{"kind", "reason"},
	)

	c.readinessAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "readiness_attempts_total",
			Help:      "Total number of readiness probe cycles",
		},
		[]string{"outcome"},
	)

	c.orphansKilled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orphans_killed_total",
			Help:      "Total number of orphaned listener processes killed",
		},
	)

	c.startupDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "startup_duration_seconds",
			Help:      "Time from spawn until the server passed its readiness checks",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"kind"},
	)

	c.registry.MustRegister(
		c.launches,
		c.reuses,
		c.readinessAttempts,
		c.orphansKilled,
		c.startupDuration,
	)

	return c
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Launch records a launch attempt and, when it became ready, its startup duration.
func (c *Collector) Launch(kind string, outcome string, duration time.Duration) {
	if c == nil {
		return
	}
	c.launches.WithLabelValues(kind, outcome).Inc()
	if outcome == OutcomeReady {
		c.startupDuration.WithLabelValues(kind).Observe(duration.Seconds())
	}
}

// Reuse records that a running server was reused instead of launched.
func (c *Collector) Reuse(kind string, reason string) {
	if c == nil {
		return
	}
	c.reuses.WithLabelValues(kind, reason).Inc()
}

// ReadinessAttempt records one probe cycle.
func (c *Collector) ReadinessAttempt(ready bool) {
	if c == nil {
		return
	}
	outcome := OutcomeNotYet
	if ready {
		outcome = OutcomeSuccess
	}
	c.readinessAttempts.WithLabelValues(outcome).Inc()
}

// OrphansKilled adds count killed orphan processes.
func (c *Collector) OrphansKilled(count int) {
	if c == nil || count <= 0 {
		return
	}
	c.orphansKilled.Add(float64(count))
}
