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

// Package log initializes the seelog based logger used by serverhost. Call Logger once, usually from main,
// and pass the result (or a context derived from it) to the components that need it.
package log

import (
	"fmt"
	"io/ioutil"
	"os"
	"sync"

	"github.com/cihub/seelog"
)

const (
	LogFile   = "serverhost.log"
	ErrorFile = "errors.log"

	// SeelogConfigEnvironmentVariable names a seelog XML file that replaces the built-in configuration.
	SeelogConfigEnvironmentVariable = "SERVERHOST_SEELOG_CONFIG"
)

// pkgMutex serializes writes coming from every wrapper created by this package.
var pkgMutex = new(sync.Mutex)

var loadedLogger *T
var lock sync.RWMutex

// Logger loads the logger from the seelog configuration and caches it.
// Subsequent calls return the cached logger.
func Logger() T {
	if !isLoaded() {
		cache(initLogger())
	}
	return getCached()
}

func isLoaded() bool {
	lock.RLock()
	defer lock.RUnlock()
	return loadedLogger != nil
}

func cache(logger T) {
	lock.Lock()
	defer lock.Unlock()
	loadedLogger = &logger
}

func getCached() T {
	lock.RLock()
	defer lock.RUnlock()
	return *loadedLogger
}

// initLogger reads the seelog configuration named by SERVERHOST_SEELOG_CONFIG, then the platform default
// location, and falls back to the built-in configuration when neither can be read.
func initLogger() T {
	for _, path := range []string{os.Getenv(SeelogConfigEnvironmentVariable), DefaultSeelogConfigFilePath} {
		if path == "" {
			continue
		}
		if logConfigBytes, err := ioutil.ReadFile(path); err == nil {
			if logger, err := initLoggerFromBytes(logConfigBytes); err == nil {
				return logger
			}
			fmt.Println("Error parsing logger config from", path)
		}
	}

	logger, err := initLoggerFromBytes(DefaultConfig())
	if err != nil {
		fmt.Println("Error parsing default logger config:", err)
		return NewSilentLog()
	}
	return logger
}

// initLoggerFromBytes initializes the logger using the specified configuration as bytes.
func initLoggerFromBytes(seelogConfig []byte) (T, error) {
	seelogger, err := seelog.LoggerFromConfigAsBytes(seelogConfig)
	if err != nil {
		return nil, err
	}
	return withContext(seelogger), nil
}

// NewSilentLog returns a logger that discards every message.
func NewSilentLog() T {
	return withContext(seelog.Disabled)
}

// NewLogFromSeelog wraps an existing seelog logger.
func NewLogFromSeelog(logger seelog.LoggerInterface, context ...string) T {
	return withContext(logger, context...)
}

func withContext(logger seelog.LoggerInterface, context ...string) T {
	// stack depth 2 makes seelog report the function calling the wrapper instead of the wrapper itself
	logger.SetAdditionalStackDepth(2)
	return &Wrapper{context: context, delegate: logger, mu: pkgMutex}
}
