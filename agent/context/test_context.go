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
	"github.com/serverhost/serverhost/agent/appconfig"
	"github.com/serverhost/serverhost/agent/log"
	"github.com/serverhost/serverhost/agent/times"
	"github.com/stretchr/testify/mock"
)

// Note: This code is used in the test files. However, this code is not in a _test.go file
// because then we would have to copy it in every test package that needs the mock.

// Mock stands for a mocked context.
type Mock struct {
	mock.Mock
}

// NewMockDefault returns an instance of Mock with default expectations set.
func NewMockDefault() *Mock {
	return NewMockDefaultWithConfig(appconfig.DefaultConfig())
}

// NewMockDefaultWithConfig returns an instance of Mock carrying config.
func NewMockDefaultWithConfig(config appconfig.ServerHostConfig) *Mock {
	ctx := new(Mock)
	ctx.On("Log").Return(log.NewMockLog())
	ctx.On("AppConfig").Return(config)
	ctx.On("With", mock.AnythingOfType("string")).Return(ctx)
	ctx.On("CurrentContext").Return([]string{})
	ctx.On("Clock").Return(times.DefaultClock)
	return ctx
}

// AppConfig mocks the AppConfig function.
func (m *Mock) AppConfig() appconfig.ServerHostConfig {
	args := m.Called()
	return args.Get(0).(appconfig.ServerHostConfig)
}

// Log mocks the Log function.
func (m *Mock) Log() log.T {
	args := m.Called()
	return args.Get(0).(log.T)
}

// With mocks the With function.
func (m *Mock) With(context string) T {
	args := m.Called(context)
	return args.Get(0).(T)
}

// CurrentContext mocks the CurrentContext function.
func (m *Mock) CurrentContext() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

// Clock mocks the Clock function.
func (m *Mock) Clock() times.Clock {
	args := m.Called()
	return args.Get(0).(times.Clock)
}
