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

//go:build linux
// +build linux

package executor

import (
	"os"
	"testing"
	"time"

	"github.com/serverhost/serverhost/agent/log"
	"github.com/serverhost/serverhost/agent/times"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartTimeOfOwnProcess(t *testing.T) {
	executor := NewProcessExecutor(log.NewMockLog())

	process, err := executor.Start(&ProcessConfig{Path: "sleep", Args: []string{"5"}})
	require.NoError(t, err)
	defer process.Kill()

	started, err := executor.StartTime(process.Pid)

	require.NoError(t, err)
	assert.True(t, times.WithinTolerance(started, process.StartedAt, 5*time.Second))
}

func TestStartTimeOfMissingProcess(t *testing.T) {
	_, err := processStartTime(os.Getpid() + 1<<22)

	assert.Error(t, err)
}
