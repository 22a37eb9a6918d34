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

// Package context defines a type that carries context specific data such as the logger.
// Inspired by Google's http://godoc.org/golang.org/x/net/context
package context

import (
	"github.com/serverhost/serverhost/agent/appconfig"
	"github.com/serverhost/serverhost/agent/log"
	"github.com/serverhost/serverhost/agent/times"
)

// T transfers context specific data across different execution boundaries.
// Instead of adding the context to specific structs, we pass Context as the first
// parameter to the constructors of the components themselves.
type T interface {
	Log() log.T
	AppConfig() appconfig.ServerHostConfig
	With(context string) T
	CurrentContext() []string
	Clock() times.Clock
}

// Default returns a context that uses the given logger and configuration and the wall clock.
func Default(logger log.T, config appconfig.ServerHostConfig, contextList ...string) T {
	return &defaultContext{
		context:   contextList,
		log:       logger.WithContext(contextList...),
		root:      logger,
		appconfig: config,
		clock:     times.DefaultClock,
	}
}

// WithClock returns a copy of ctx reading time from clock.
func WithClock(ctx T, clock times.Clock) T {
	if c, ok := ctx.(*defaultContext); ok {
		copied := *c
		copied.clock = clock
		return &copied
	}
	return ctx
}

type defaultContext struct {
	context   []string
	log       log.T
	root      log.T
	appconfig appconfig.ServerHostConfig
	clock     times.Clock
}

func (c *defaultContext) With(logContext string) T {
	contextSlice := append(append([]string{}, c.context...), logContext)
	return &defaultContext{
		context:   contextSlice,
		log:       c.root.WithContext(contextSlice...),
		root:      c.root,
		appconfig: c.appconfig,
		clock:     c.clock,
	}
}

func (c *defaultContext) Log() log.T {
	return c.log
}

func (c *defaultContext) AppConfig() appconfig.ServerHostConfig {
	return c.appconfig
}

func (c *defaultContext) CurrentContext() []string {
	return c.context
}

func (c *defaultContext) Clock() times.Clock {
	return c.clock
}
