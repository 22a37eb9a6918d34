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

package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Launch(t *testing.T) {
	c := NewCollector("test")

	c.Launch("node", OutcomeReady, 2*time.Second)
	c.Launch("node", OutcomeFailed, time.Second)
	c.Launch("node", OutcomeReady, 500*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.launches.WithLabelValues("node", OutcomeReady)))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.launches.WithLabelValues("node", OutcomeFailed)))

	count, err := testutil.GatherAndCount(c.Registry(), "test_startup_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCollector_Reuse(t *testing.T) {
	c := NewCollector("test")
	c.Reuse("standard-web", ReasonHealthy)
	c.Reuse("standard-web", ReasonHealthy)
	c.Reuse("standard-web", ReasonDrift)

	expected := `
		# HELP test_reuses_total Total number of times an already running server was reused
		# TYPE test_reuses_total counter
		test_reuses_total{kind="standard-web",reason="drift"} 1
		test_reuses_total{kind="standard-web",reason="healthy"} 2
	`
	err := testutil.GatherAndCompare(c.Registry(), strings.NewReader(expected), "test_reuses_total")
	assert.NoError(t, err)
}

func TestCollector_ReadinessAndOrphans(t *testing.T) {
	c := NewCollector("")
	c.ReadinessAttempt(false)
	c.ReadinessAttempt(false)
	c.ReadinessAttempt(true)
	c.OrphansKilled(3)
	c.OrphansKilled(0)
	c.OrphansKilled(-2)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.readinessAttempts.WithLabelValues(OutcomeNotYet)))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.readinessAttempts.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, float64(3), testutil.ToFloat64(c.orphansKilled))

	count, err := testutil.GatherAndCount(c.Registry(), "serverhost_orphans_killed_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.Launch("node", OutcomeReady, time.Second)
		c.Reuse("node", ReasonHealthy)
		c.ReadinessAttempt(true)
		c.OrphansKilled(1)
	})
	assert.Nil(t, c.Registry())
}
