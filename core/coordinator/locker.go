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

package coordinator

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/nightlyone/lockfile"
	"github.com/serverhost/serverhost/agent/fileutil"
)

// Locker is a non-blocking mutual exclusion primitive.
type Locker interface {
	// TryLock acquires the lock if it is free and reports whether it did.
	TryLock() (bool, error)
	Unlock() error
}

// LockerFactory returns the lock guarding server starts on port.
type LockerFactory func(port int) (Locker, error)

// LockFileName is the name of the lock file guarding port.
func LockFileName(port int) string {
	return fmt.Sprintf("serverhost-port-%d.lock", port)
}

// local serializes lockers of the same name inside one process; a lock file owned by the current pid
// counts as acquired, so it cannot do that on its own.
type local struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func (l *local) slot(name string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.slots == nil {
		l.slots = map[string]chan struct{}{}
	}
	ch, ok := l.slots[name]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[name] = ch
	}
	return ch
}

var processLocks = &local{}

// fileLocker is a pid lock file shared by every process on the host, combined with an in-process slot.
type fileLocker struct {
	path string
	file lockfile.Lockfile
	slot chan struct{}
}

// NewFileLockerFactory creates lock files in dir.
func NewFileLockerFactory(dir string) LockerFactory {
	return func(port int) (Locker, error) {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		if err = fileutil.MakeDirs(absDir); err != nil {
			return nil, fmt.Errorf("failed to create lock directory %v, %v", absDir, err)
		}
		path := filepath.Join(absDir, LockFileName(port))
		file, err := lockfile.New(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create lock %v, %v", path, err)
		}
		return &fileLocker{path: path, file: file, slot: processLocks.slot(path)}, nil
	}
}

func (l *fileLocker) TryLock() (bool, error) {
	select {
	case l.slot <- struct{}{}:
	default:
		return false, nil
	}
	err := l.file.TryLock()
	if err == nil {
		return true, nil
	}
	<-l.slot
	if errors.Is(err, lockfile.ErrBusy) {
		return false, nil
	}
	return false, fmt.Errorf("failed to lock %v, %v", l.path, err)
}

func (l *fileLocker) Unlock() error {
	defer func() { <-l.slot }()
	if err := l.file.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock %v, %v", l.path, err)
	}
	return nil
}

// Owner returns the pid holding the lock file.
func (l *fileLocker) Owner() (int, bool) {
	process, err := l.file.GetOwner()
	if err != nil {
		return 0, false
	}
	return process.Pid, true
}

// NewMemoryLockerFactory returns lockers that only exclude each other inside the process, for tests
// and single process use.
func NewMemoryLockerFactory() LockerFactory {
	locks := &local{}
	return func(port int) (Locker, error) {
		return &memoryLocker{slot: locks.slot(LockFileName(port))}, nil
	}
}

type memoryLocker struct {
	slot chan struct{}
}

func (l *memoryLocker) TryLock() (bool, error) {
	select {
	case l.slot <- struct{}{}:
		return true, nil
	default:
		return false, nil
	}
}

func (l *memoryLocker) Unlock() error {
	select {
	case <-l.slot:
		return nil
	default:
		return errors.New("lock is not held")
	}
}
