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

// Package coordinator makes sure only one process on the host starts the server for a port.
//
// A caller either acquires the port's start lock and runs the start sequence under it, or waits for the
// holder and picks up the server the holder made healthy.
package coordinator

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/serverhost/serverhost/agent/backoffconfig"
	agentctx "github.com/serverhost/serverhost/agent/context"
	"github.com/serverhost/serverhost/agent/launchspec"
	"github.com/serverhost/serverhost/agent/log"
	"github.com/serverhost/serverhost/agent/times"
	"github.com/serverhost/serverhost/core/readiness"
	"github.com/serverhost/serverhost/core/registry"
)

var errLockBusy = errors.New("start lock busy")

// StartFunc runs while the start lock is held and returns the entry of the server it started or reused.
type StartFunc func() (registry.Entry, error)

// Coordinator arbitrates server starts for a port.
type Coordinator struct {
	log       log.T
	clock     times.Clock
	locks     LockerFactory
	probe     readiness.Probe
	registry  registry.Registry
	waitSlice time.Duration
}

// NewCoordinator creates a coordinator polling every configured wait slice.
func NewCoordinator(ctx agentctx.T, locks LockerFactory, probe readiness.Probe, reg registry.Registry) *Coordinator {
	return &Coordinator{
		log:       ctx.With("[Coordinator]").Log(),
		clock:     ctx.Clock(),
		locks:     locks,
		probe:     probe,
		registry:  reg,
		waitSlice: time.Duration(ctx.AppConfig().Lock.WaitSliceMillis) * time.Millisecond,
	}
}

// NewDefaultCoordinator uses lock files in the configured lock directory.
func NewDefaultCoordinator(ctx agentctx.T, probe readiness.Probe, reg registry.Registry) *Coordinator {
	return NewCoordinator(ctx, NewFileLockerFactory(ctx.AppConfig().Lock.Directory), probe, reg)
}

// Run acquires the start lock for the port of spec, runs start under it and releases it. While another
// process holds the lock, the port is probed every wait slice; once it is healthy Run returns the
// holder's server without calling start. started reports whether start ran.
func (c *Coordinator) Run(spec launchspec.Spec, start StartFunc) (entry registry.Entry, started bool, err error) {
	port := spec.Port()
	locker, err := c.locks(port)
	if err != nil {
		return registry.Entry{}, false, err
	}

	begin := c.clock.Now()
	acquired, err := c.wait(spec, locker)
	if err != nil {
		return registry.Entry{}, false, err
	}
	if !acquired {
		return c.adopt(spec), false, nil
	}

	c.log.Debugf("Acquired start lock for port %v after %v", port, times.Since(c.clock, begin))
	defer func() {
		if unlockErr := locker.Unlock(); unlockErr != nil {
			c.log.Warnf("Failed to release start lock for port %v, %v", port, unlockErr)
		}
	}()
	entry, err = start()
	return entry, true, err
}

// wait returns true once the lock is acquired and false when another holder made the port healthy.
func (c *Coordinator) wait(spec launchspec.Spec, locker Locker) (bool, error) {
	port := spec.Port()
	begin := c.clock.Now()

	ctx, cancel := context.WithTimeout(context.Background(), spec.StartupTimeout())
	defer cancel()
	policy, err := backoffconfig.GetPollingBackoff(ctx, c.waitSlice)
	if err != nil {
		return false, err
	}

	acquired := false
	reported := false
	operation := func() error {
		ok, err := locker.TryLock()
		if err != nil {
			c.log.Warnf("Failed to try start lock for port %v, %v", port, err)
		}
		if ok {
			acquired = true
			return nil
		}
		if !reported {
			reported = true
			c.reportHolder(port, locker)
		}
		if c.probe.IsReady(spec) {
			return nil
		}
		return errLockBusy
	}

	if err = backoff.Retry(operation, policy); err != nil {
		return false, &LockTimeoutError{Port: port, Elapsed: times.Since(c.clock, begin)}
	}
	return acquired, nil
}

func (c *Coordinator) reportHolder(port int, locker Locker) {
	if owned, ok := locker.(interface{ Owner() (int, bool) }); ok {
		if pid, found := owned.Owner(); found {
			c.log.Infof("Start lock for port %v is held by pid %v, waiting", port, pid)
			return
		}
	}
	c.log.Infof("Start lock for port %v is held by another caller, waiting", port)
}

// adopt describes the server another holder made healthy, preferring its registry entry.
func (c *Coordinator) adopt(spec launchspec.Spec) registry.Entry {
	hash := spec.ConfigHash()
	if entry, found, err := c.registry.TryLoad(hash); err == nil && found {
		c.log.Infof("Port %v became healthy under another holder, reusing pid %v", spec.Port(), entry.PID)
		return entry
	}
	if entries, err := c.registry.FindByPort(spec.Port()); err == nil && len(entries) > 0 {
		c.log.Warnf("Port %v is healthy but runs configuration %v instead of %v, reusing it",
			spec.Port(), entries[0].ConfigHash, hash)
	} else {
		c.log.Warnf("Port %v is healthy but no registered server matches it, assuming another holder started it",
			spec.Port())
	}
	return registry.Entry{
		Port:       spec.Port(),
		Ports:      spec.AllPorts(),
		BaseURL:    spec.BaseURL(),
		ConfigHash: hash,
		Kind:       string(spec.Kind()),
		Healthy:    true,
	}
}
