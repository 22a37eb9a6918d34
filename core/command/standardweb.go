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
	"strings"

	"github.com/serverhost/serverhost/agent/launchspec"
)

const (
	DotnetExecutable = "dotnet"

	UrlsVariable                     = "ASPNETCORE_URLS"
	HostingStartupAssembliesVariable = "ASPNETCORE_HOSTINGSTARTUPASSEMBLIES"
	SpaProxyAssembly                 = "Microsoft.AspNetCore.SpaProxy"

	argumentSeparator = "--"
)

// option is a command line option as the runtime parses it: "--name value", "-n value" or "--name=value".
type option struct {
	names      []string
	takesValue bool
}

var (
	frameworkOption     = option{names: []string{"--framework", "-f"}, takesValue: true}
	configurationOption = option{names: []string{"--configuration", "-c"}, takesValue: true}
	projectOption       = option{names: []string{"--project", "-p"}, takesValue: true}
	urlsOption          = option{names: []string{"--urls"}, takesValue: true}
	launchProfileOption = option{names: []string{"--no-launch-profile"}}
)

// BuildStandardWeb builds "dotnet run". The base URL is passed in ASPNETCORE_URLS only.
func BuildStandardWeb(spec launchspec.Spec) (Command, error) {
	if err := requireEntryPath(spec); err != nil {
		return Command{}, err
	}
	if spec.Kind() == launchspec.StandardWeb {
		if err := requireBaseURL(spec); err != nil {
			return Command{}, err
		}
	}

	tokens := []string{"run", "--project", spec.EntryPath(), "--no-launch-profile"}
	extra := spec.Args()
	extra = removeOption(extra, projectOption, false)
	extra = removeOption(extra, urlsOption, false)
	extra = removeOption(extra, launchProfileOption, false)
	if spec.Framework() != "" {
		extra = removeOption(extra, frameworkOption, false)
		tokens = append(tokens, "--framework", spec.Framework())
	} else {
		extra = removeOption(extra, frameworkOption, true)
	}
	if spec.Configuration() != "" {
		extra = removeOption(extra, configurationOption, false)
		tokens = append(tokens, "--configuration", spec.Configuration())
	} else {
		extra = removeOption(extra, configurationOption, true)
	}
	tokens = append(tokens, extra...)

	vars := map[string]string{}
	var unset []string
	if spec.BaseURL() != "" {
		vars[UrlsVariable] = spec.BaseURL()
	}
	if enabled, set := spec.SPAProxy(); set {
		if enabled {
			vars[HostingStartupAssembliesVariable] = SpaProxyAssembly
		} else {
			unset = append(unset, HostingStartupAssembliesVariable)
		}
	}

	return Command{
		Executable: DotnetExecutable,
		Arguments:  JoinArgs(tokens),
		Env:        overlay(spec, vars, unset),
		Unset:      unset,
	}, nil
}

// removeOption drops every occurrence of o before the "--" separator, or every occurrence but the
// last one when keepLast is set.
func removeOption(tokens []string, o option, keepLast bool) []string {
	type span struct{ start, end int }
	var spans []span
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		if token == argumentSeparator {
			break
		}
		for _, name := range o.names {
			if token == name {
				end := i + 1
				if o.takesValue && end < len(tokens) && tokens[end] != argumentSeparator {
					end++
				}
				spans = append(spans, span{i, end})
				i = end - 1
				break
			}
			if o.takesValue && strings.HasPrefix(token, name+"=") {
				spans = append(spans, span{i, i + 1})
				break
			}
		}
	}
	if keepLast && len(spans) > 0 {
		spans = spans[:len(spans)-1]
	}
	if len(spans) == 0 {
		return tokens
	}

	drop := make(map[int]bool)
	for _, s := range spans {
		for i := s.start; i < s.end; i++ {
			drop[i] = true
		}
	}
	kept := make([]string, 0, len(tokens))
	for i, token := range tokens {
		if !drop[i] {
			kept = append(kept, token)
		}
	}
	return kept
}
