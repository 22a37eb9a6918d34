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

package command

import (
	"errors"
	"testing"

	"github.com/serverhost/serverhost/agent/launchspec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSpec(t *testing.T, builder *launchspec.Builder) launchspec.Spec {
	spec, err := builder.WithHeadless(false).Build()
	require.NoError(t, err)
	return spec
}

func standardWeb(t *testing.T, configure func(b *launchspec.Builder)) launchspec.Spec {
	b := launchspec.NewBuilder(launchspec.StandardWeb).
		WithBaseURL("http://localhost:5001").
		WithEntryPath("/src/App/App.csproj")
	if configure != nil {
		configure(b)
	}
	return buildSpec(t, b)
}

func TestStandardWebCommand(t *testing.T) {
	spec := standardWeb(t, func(b *launchspec.Builder) {
		b.WithFramework("net-x").WithConfiguration("Release")
	})

	cmd, err := BuildStandardWeb(spec)
	require.NoError(t, err)

	argv, err := cmd.Argv()
	require.NoError(t, err)
	assert.Equal(t, DotnetExecutable, cmd.Executable)
	assert.Equal(t, "run", argv[0])
	assert.Contains(t, argv, "net-x")
	assert.Contains(t, argv, "Release")
	assert.Contains(t, argv, "--no-launch-profile")
	assert.NotContains(t, argv, "--urls")
	for _, token := range argv {
		assert.NotContains(t, token, "localhost:5001")
	}
	assert.Equal(t, "http://localhost:5001", cmd.Env[UrlsVariable])
}

func TestStandardWebExplicitTagsReplaceCallerTokens(t *testing.T) {
	spec := standardWeb(t, func(b *launchspec.Builder) {
		b.WithFramework("net-x").
			WithConfiguration("Release").
			WithArgs("--framework", "net-old", "-c", "Debug", "--configuration=Other", "--verbosity", "quiet", "--urls", "http://*:1")
	})

	cmd, err := BuildStandardWeb(spec)
	require.NoError(t, err)
	argv, _ := cmd.Argv()

	assert.Equal(t, []string{
		"run", "--project", "/src/App/App.csproj", "--no-launch-profile",
		"--framework", "net-x", "--configuration", "Release",
		"--verbosity", "quiet",
	}, argv)
}

func TestStandardWebLastCallerTokenWins(t *testing.T) {
	spec := standardWeb(t, func(b *launchspec.Builder) {
		b.WithArgs("-f", "net-a", "--framework", "net-b", "--", "--framework", "app-arg")
	})

	cmd, err := BuildStandardWeb(spec)
	require.NoError(t, err)
	argv, _ := cmd.Argv()

	assert.Equal(t, []string{
		"run", "--project", "/src/App/App.csproj", "--no-launch-profile",
		"--framework", "net-b", "--", "--framework", "app-arg",
	}, argv)
}

func TestStandardWebSpaProxy(t *testing.T) {
	on := standardWeb(t, func(b *launchspec.Builder) { b.WithSPAProxy(true) })
	cmd, err := BuildStandardWeb(on)
	require.NoError(t, err)
	assert.Equal(t, SpaProxyAssembly, cmd.Env[HostingStartupAssembliesVariable])
	assert.Empty(t, cmd.Unset)

	off := standardWeb(t, func(b *launchspec.Builder) {
		b.WithSPAProxy(false).WithEnv("aspnetcore_hostingstartupassemblies", "Other")
	})
	cmd, err = BuildStandardWeb(off)
	require.NoError(t, err)
	assert.Equal(t, []string{HostingStartupAssembliesVariable}, cmd.Unset)
	for key := range cmd.Env {
		assert.NotEqual(t, HostingStartupAssembliesVariable, key)
		assert.NotEqual(t, "aspnetcore_hostingstartupassemblies", key)
	}

	unset := standardWeb(t, nil)
	cmd, err = BuildStandardWeb(unset)
	require.NoError(t, err)
	assert.NotContains(t, cmd.Env, HostingStartupAssembliesVariable)
	assert.Empty(t, cmd.Unset)
}

func TestStandardWebBaseURLOverridesCallerVariable(t *testing.T) {
	spec := standardWeb(t, func(b *launchspec.Builder) {
		b.WithEnv("aspnetcore_urls", "http://other:1").WithEnv("FEATURE", "on")
	})

	cmd, err := BuildStandardWeb(spec)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{UrlsVariable: "http://localhost:5001", "FEATURE": "on"}, cmd.Env)
}

func TestNodeCommand(t *testing.T) {
	defer func(original string) { goos = original }(goos)
	goos = "linux"

	spec := buildSpec(t, launchspec.NewBuilder(launchspec.Node).
		WithBaseURL("http://localhost:3000").
		WithEntryPath("/src/web/package.json"))

	cmd, err := BuildNode(spec)
	require.NoError(t, err)
	assert.Equal(t, "npm", cmd.Executable)
	assert.Equal(t, "start", cmd.Arguments)
	assert.Equal(t, "3000", cmd.Env[PortVariable])
	assert.NotContains(t, cmd.Env, BrowserVariable)
}

func TestNodeScriptAndExtraTokens(t *testing.T) {
	defer func(original string) { goos = original }(goos)
	goos = "windows"

	spec, err := launchspec.NewBuilder(launchspec.Node).
		WithBaseURL("http://localhost:4200").
		WithEntryPath("/src/web").
		WithPackageManager("yarn").
		WithScript("serve").
		WithArgs("--host", "0.0.0.0", "--title", "my app").
		WithHeadless(true).
		Build()
	require.NoError(t, err)

	cmd, err := BuildNode(spec)
	require.NoError(t, err)
	assert.Equal(t, "yarn.cmd", cmd.Executable)
	argv, err := cmd.Argv()
	require.NoError(t, err)
	assert.Equal(t, []string{"run", "serve", "--", "--host", "0.0.0.0", "--title", "my app"}, argv)
	assert.Equal(t, "none", cmd.Env[BrowserVariable])
	assert.Equal(t, "4200", cmd.Env[PortVariable])
}

func TestNodeKeepsSingleSeparator(t *testing.T) {
	spec := buildSpec(t, launchspec.NewBuilder(launchspec.Node).
		WithBaseURL("http://localhost:3000").
		WithEntryPath("/src/web").
		WithArgs("--", "--open"))

	cmd, err := BuildNode(spec)
	require.NoError(t, err)
	argv, _ := cmd.Argv()
	assert.Equal(t, []string{"start", "--", "--open"}, argv)
}

func TestExternalCommand(t *testing.T) {
	spec := buildSpec(t, launchspec.NewBuilder(launchspec.External).
		WithBaseURL("http://localhost:8080").
		WithEntryPath("/opt/server/bin/server").
		WithArgs("--listen", ":8080").
		WithEnv("MODE", "test"))

	cmd, err := BuildExternal(spec)
	require.NoError(t, err)
	assert.Equal(t, "/opt/server/bin/server", cmd.Executable)
	argv, _ := cmd.Argv()
	assert.Equal(t, []string{"--listen", ":8080"}, argv)
	assert.Equal(t, map[string]string{"MODE": "test"}, cmd.Env)
}

func TestExternalWithoutEntryPathIsAttachOnly(t *testing.T) {
	spec := buildSpec(t, launchspec.NewBuilder(launchspec.External).WithBaseURL("http://localhost:8080"))

	_, err := BuildExternal(spec)
	assert.True(t, errors.Is(err, ErrNoCommand))
}

func TestMissingEntryPathIsValidationFailure(t *testing.T) {
	spec := buildSpec(t, launchspec.NewBuilder(launchspec.StandardWeb).
		WithBaseURL("http://localhost:5001").
		LocateEntryPath(true))

	_, err := BuildStandardWeb(spec)
	assert.True(t, errors.Is(err, launchspec.ErrValidation))
}

func TestDefaultTableCoversEveryKind(t *testing.T) {
	table := DefaultTable()
	for _, kind := range launchspec.Kinds() {
		assert.Contains(t, table, kind)
	}

	orchestrated := buildSpec(t, launchspec.NewBuilder(launchspec.DistributedOrchestrator).
		WithBaseURL("http://localhost:15000").
		WithEntryPath("/src/AppHost/AppHost.csproj"))
	_, err := table.Build(orchestrated)
	assert.True(t, errors.Is(err, ErrNoBuilder))

	harness := buildSpec(t, launchspec.NewBuilder(launchspec.InProcessHarness).
		WithEntryPath("/src/App/App.csproj"))
	cmd, err := table.Build(harness)
	require.NoError(t, err)
	assert.Equal(t, DotnetExecutable, cmd.Executable)
	assert.NotContains(t, cmd.Env, UrlsVariable)
}

func TestTableWithoutBuilder(t *testing.T) {
	spec := standardWeb(t, nil)
	_, err := Table{}.Build(spec)
	assert.True(t, errors.Is(err, ErrNoBuilder))
}

func TestJoinArgsRoundTrip(t *testing.T) {
	tokens := []string{"plain", "with space", `quote"d`, `back\slash`, "", "it's", "#hash"}
	cmd := Command{Executable: "x", Arguments: JoinArgs(tokens)}

	argv, err := cmd.Argv()
	require.NoError(t, err)
	assert.Equal(t, tokens, argv)
}

func TestCommandString(t *testing.T) {
	cmd := Command{Executable: "/opt/my server/run", Arguments: "--a 1"}
	assert.Equal(t, `"/opt/my server/run" --a 1`, cmd.String())
	assert.Equal(t, "dotnet", Command{Executable: "dotnet"}.String())
}
