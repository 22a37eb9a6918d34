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
	"github.com/serverhost/serverhost/agent/launchspec"
)

// BuildExternal runs the entry path as the executable with the extra tokens verbatim. Without an entry
// path the server is expected to be running already and ErrNoCommand is returned.
func BuildExternal(spec launchspec.Spec) (Command, error) {
	if spec.EntryPath() == "" {
		return Command{}, ErrNoCommand
	}
	return Command{
		Executable: spec.EntryPath(),
		Arguments:  JoinArgs(spec.Args()),
		Env:        overlay(spec, nil, nil),
	}, nil
}
