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

package context

import (
	"testing"
	"time"

	"github.com/serverhost/serverhost/agent/appconfig"
	"github.com/serverhost/serverhost/agent/log"
	"github.com/serverhost/serverhost/agent/times"
	"github.com/stretchr/testify/assert"
)

func TestWithAppendsContextWithoutSharingSlices(t *testing.T) {
	ctx := Default(log.NewSilentLog(), appconfig.DefaultConfig(), "[ServerHost]")

	launcher := ctx.With("[Launcher]")
	probe := ctx.With("[Probe]")

	assert.Equal(t, []string{"[ServerHost]"}, ctx.CurrentContext())
	assert.Equal(t, []string{"[ServerHost]", "[Launcher]"}, launcher.CurrentContext())
	assert.Equal(t, []string{"[ServerHost]", "[Probe]"}, probe.CurrentContext())
	assert.Equal(t, ctx.AppConfig(), probe.AppConfig())
}

func TestWithClockReplacesClock(t *testing.T) {
	clock := times.NewMockedClock()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	clock.On("Now").Return(fixed)

	ctx := WithClock(Default(log.NewSilentLog(), appconfig.DefaultConfig()), clock)

	assert.Equal(t, fixed, ctx.Clock().Now())
	assert.Equal(t, fixed, ctx.With("[x]").Clock().Now())
}
