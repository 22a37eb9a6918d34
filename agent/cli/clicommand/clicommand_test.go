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

package clicommand

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/serverhost/serverhost/agent/appconfig"
	"github.com/serverhost/serverhost/agent/context"
	"github.com/serverhost/serverhost/agent/jsonutil"
	"github.com/serverhost/serverhost/agent/log"
	"github.com/serverhost/serverhost/core/command"
	"github.com/serverhost/serverhost/core/coordinator"
	"github.com/serverhost/serverhost/core/executor"
	"github.com/serverhost/serverhost/core/hosting"
	"github.com/serverhost/serverhost/core/readiness"
	"github.com/serverhost/serverhost/core/registry"
	"github.com/serverhost/serverhost/core/registry/datastore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type portListeners map[int][]int

func (p portListeners) FindProcessesOnPort(port int) ([]int, error) {
	return p[port], nil
}

type cliFixture struct {
	ctx       context.T
	exec      *executor.FakeExecutor
	listeners portListeners
	specPath  string
	logs      string
}

func newCliFixture(t *testing.T) *cliFixture {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	dir := t.TempDir()
	config := appconfig.DefaultConfig()
	config.Lock.WaitSliceMillis = 10
	f := &cliFixture{
		ctx:       context.NewMockDefaultWithConfig(config),
		exec:      executor.NewFakeExecutor(),
		listeners: portListeners{},
		specPath:  filepath.Join(dir, "web.yaml"),
		logs:      filepath.Join(dir, "logs"),
	}
	document := fmt.Sprintf(`kind: external
baseUrl: %v
entryPath: /opt/server/run
args: ["--port", "8080"]
initialDelay: 0s
pollInterval: 10ms
startupTimeout: 2s
headless: true
`, server.URL)
	require.NoError(t, os.WriteFile(f.specPath, []byte(document), appconfig.ReadWriteAccess))

	store := datastore.NewLocalFileStore(log.NewMockLog(), filepath.Join(dir, "registry"))
	reg := registry.NewProcessRegistry(f.ctx, store, f.exec, f.listeners, nil)
	probe := readiness.NewHTTPProbe(f.ctx, nil)
	deps := hosting.Dependencies{
		Context:     f.ctx,
		Registry:    reg,
		Coordinator: coordinator.NewCoordinator(f.ctx, coordinator.NewMemoryLockerFactory(), probe, reg),
		Probe:       probe,
		Builders:    command.DefaultTable(),
		Executor:    f.exec,
	}

	oldDependencies, oldLogs := newDependencies, logsDirectory
	newDependencies = func(context.T) hosting.Dependencies { return deps }
	logsDirectory = func() string { return f.logs }
	t.Cleanup(func() { newDependencies, logsDirectory = oldDependencies, oldLogs })
	return f
}

func (f *cliFixture) specParameters() map[string][]string {
	return map[string][]string{specFlag: {f.specPath}}
}

func decodeStatus(t *testing.T, result string) hosting.ServerStatus {
	var status hosting.ServerStatus
	require.NoError(t, jsonutil.Unmarshal(result, &status))
	return status
}

func TestStartAndReuse(t *testing.T) {
	f := newCliFixture(t)

	err, result := (&StartCommand{}).Execute(f.ctx, nil, f.specParameters())
	require.NoError(t, err)
	first := decodeStatus(t, result)
	assert.Equal(t, 1001, first.PID)
	assert.True(t, first.Running)
	assert.False(t, first.Reused)

	require.Len(t, f.exec.Started, 1)
	assert.Equal(t, "/opt/server/run", f.exec.Started[0].Path)
	assert.Equal(t, []string{"--port", "8080"}, f.exec.Started[0].Args)
	assert.FileExists(t, filepath.Join(f.logs, first.ConfigHash+".log"))

	err, result = (&StartCommand{}).Execute(f.ctx, nil, f.specParameters())
	require.NoError(t, err)
	second := decodeStatus(t, result)
	assert.Equal(t, first.PID, second.PID)
	assert.True(t, second.Reused)
	assert.Len(t, f.exec.Started, 1)
}

func TestHashMatchesStartedServer(t *testing.T) {
	f := newCliFixture(t)
	err, started := (&StartCommand{}).Execute(f.ctx, nil, f.specParameters())
	require.NoError(t, err)

	err, hash := (&HashCommand{}).Execute(f.ctx, nil, f.specParameters())
	require.NoError(t, err)
	assert.Equal(t, decodeStatus(t, started).ConfigHash, hash)
	assert.Len(t, hash, 64)
}

func TestStatusAndStop(t *testing.T) {
	f := newCliFixture(t)

	err, result := (&StatusCommand{}).Execute(f.ctx, nil, f.specParameters())
	require.NoError(t, err)
	assert.False(t, decodeStatus(t, result).Running)

	err, _ = (&StartCommand{}).Execute(f.ctx, nil, f.specParameters())
	require.NoError(t, err)

	err, result = (&StatusCommand{}).Execute(f.ctx, nil, f.specParameters())
	require.NoError(t, err)
	status := decodeStatus(t, result)
	assert.Equal(t, 1001, status.PID)
	assert.True(t, status.Running)
	assert.True(t, status.Healthy)

	err, result = (&StopCommand{}).Execute(f.ctx, nil, f.specParameters())
	require.NoError(t, err)
	assert.Contains(t, result, "pid 1001")
	assert.Equal(t, []int{1001}, f.exec.Killed)

	err, _ = (&StopCommand{}).Execute(f.ctx, nil, f.specParameters())
	assert.Error(t, err)
}

func TestStopLeavesRecycledPidAlone(t *testing.T) {
	f := newCliFixture(t)
	err, _ := (&StartCommand{}).Execute(f.ctx, nil, f.specParameters())
	require.NoError(t, err)
	f.exec.Exit(1001, nil)
	f.exec.AddProcess(1001, 1, "postgres", f.ctx.Clock().Now().Add(time.Hour))

	err, result := (&StopCommand{}).Execute(f.ctx, nil, f.specParameters())
	require.NoError(t, err)
	assert.Contains(t, result, "Removed registration")
	assert.Empty(t, f.exec.Killed)

	err, _ = (&StopCommand{}).Execute(f.ctx, nil, f.specParameters())
	assert.Error(t, err)
}

func TestListShowsEntries(t *testing.T) {
	f := newCliFixture(t)

	err, result := (&ListCommand{}).Execute(f.ctx, nil, map[string][]string{})
	require.NoError(t, err)
	assert.Equal(t, "[]", result)

	err, started := (&StartCommand{}).Execute(f.ctx, nil, f.specParameters())
	require.NoError(t, err)
	err, result = (&ListCommand{}).Execute(f.ctx, nil, map[string][]string{})
	require.NoError(t, err)

	var entries []registry.Entry
	require.NoError(t, jsonutil.Unmarshal(result, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, decodeStatus(t, started).ConfigHash, entries[0].ConfigHash)
	assert.True(t, entries[0].Healthy)
}

func TestReapKillsUnknownListeners(t *testing.T) {
	f := newCliFixture(t)
	f.exec.AddProcess(4321, 1, "stale", f.ctx.Clock().Now())
	f.listeners[9100] = []int{4321}

	err, result := (&ReapCommand{}).Execute(f.ctx, nil, map[string][]string{portFlag: {"9100"}})
	require.NoError(t, err)
	assert.Equal(t, "[4321]", result)
	assert.Equal(t, []int{4321}, f.exec.Killed)

	err, result = (&ReapCommand{}).Execute(f.ctx, nil, map[string][]string{})
	require.NoError(t, err)
	assert.Equal(t, "[]", result)

	err, _ = (&ReapCommand{}).Execute(f.ctx, nil, map[string][]string{portFlag: {"http"}})
	assert.Error(t, err)
}

func TestInputValidation(t *testing.T) {
	f := newCliFixture(t)

	err, _ := (&StartCommand{}).Execute(f.ctx, nil, map[string][]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--spec is required")

	err, _ = (&StartCommand{}).Execute(f.ctx, nil, map[string][]string{specFlag: {f.specPath}, "verbose": {}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown parameter --verbose")

	err, _ = (&StatusCommand{}).Execute(f.ctx, []string{"now"}, f.specParameters())
	assert.Error(t, err)

	err, _ = (&HashCommand{}).Execute(f.ctx, nil, map[string][]string{specFlag: {filepath.Join(f.logs, "missing.yaml")}})
	assert.Error(t, err)
}

func TestHelpText(t *testing.T) {
	help := (&StartCommand{}).Help()
	assert.Contains(t, help, "serverhost-cli start --spec web.yaml")
	assert.Contains(t, (&ReapCommand{}).Help(), "--port")
}
