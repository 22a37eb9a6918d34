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

package log

import (
	"fmt"

	"github.com/stretchr/testify/mock"
)

// Mock is a testify mock of T. NewMockLog registers permissive expectations
// for every method, so tests only add expectations they want to assert on.
type Mock struct {
	mock.Mock
}

// NewMockLog returns a Mock that accepts any logging call.
func NewMockLog() *Mock {
	log := new(Mock)
	log.On("Close").Return()
	log.On("Flush").Return()
	for _, level := range []string{"Trace", "Debug", "Info"} {
		log.On(level, mock.Anything).Return()
		log.On(level+"f", mock.Anything, mock.Anything).Return()
	}
	for _, level := range []string{"Warn", "Error", "Critical"} {
		log.On(level, mock.Anything).Return(nil)
		log.On(level+"f", mock.Anything, mock.Anything).Return(nil)
	}
	log.On("WithContext", mock.Anything).Return(log)
	return log
}

// Messages returns the formatted messages recorded for a formatting method
// such as "Warnf", in call order.
func (_m *Mock) Messages(method string) []string {
	var messages []string
	for _, call := range _m.Calls {
		if call.Method != method {
			continue
		}
		format := call.Arguments.String(0)
		params, _ := call.Arguments.Get(1).([]interface{})
		messages = append(messages, fmt.Sprintf(format, params...))
	}
	return messages
}

// Warnings returns the messages passed to Warnf.
func (_m *Mock) Warnings() []string {
	return _m.Messages("Warnf")
}

// WithContext returns the configured logger, or the mock itself.
func (_m *Mock) WithContext(context ...string) T {
	ret := _m.Called(context)
	if logger, ok := ret.Get(0).(T); ok {
		return logger
	}
	return _m
}

func (_m *Mock) Tracef(format string, params ...interface{}) { _m.Called(format, params) }
func (_m *Mock) Debugf(format string, params ...interface{}) { _m.Called(format, params) }
func (_m *Mock) Infof(format string, params ...interface{})  { _m.Called(format, params) }
func (_m *Mock) Trace(v ...interface{})                      { _m.Called(v) }
func (_m *Mock) Debug(v ...interface{})                      { _m.Called(v) }
func (_m *Mock) Info(v ...interface{})                       { _m.Called(v) }
func (_m *Mock) Flush()                                      { _m.Called() }
func (_m *Mock) Close()                                      { _m.Called() }

func (_m *Mock) Warnf(format string, params ...interface{}) error {
	return formatResult(_m.Called(format, params), format, params)
}

func (_m *Mock) Errorf(format string, params ...interface{}) error {
	return formatResult(_m.Called(format, params), format, params)
}

func (_m *Mock) Criticalf(format string, params ...interface{}) error {
	return formatResult(_m.Called(format, params), format, params)
}

func (_m *Mock) Warn(v ...interface{}) error     { return valuesResult(_m.Called(v), v) }
func (_m *Mock) Error(v ...interface{}) error    { return valuesResult(_m.Called(v), v) }
func (_m *Mock) Critical(v ...interface{}) error { return valuesResult(_m.Called(v), v) }

func formatResult(ret mock.Arguments, format string, params []interface{}) error {
	if rf, ok := ret.Get(0).(func(string, ...interface{}) error); ok {
		return rf(format, params...)
	}
	return ret.Error(0)
}

func valuesResult(ret mock.Arguments, v []interface{}) error {
	if rf, ok := ret.Get(0).(func(...interface{}) error); ok {
		return rf(v...)
	}
	return ret.Error(0)
}
