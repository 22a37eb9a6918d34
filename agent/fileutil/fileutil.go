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

// Package fileutil contains utilities for working with the file system.
package fileutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/serverhost/serverhost/agent/appconfig"
	"github.com/serverhost/serverhost/agent/backoffconfig"
)

// tailReadLimit bounds how much of a file ReadTail scans from its end.
const tailReadLimit = 1 << 20

// DeleteFile deletes the specified file. A missing file is not an error.
func DeleteFile(path string) (err error) {
	if err = fs.Remove(path); err != nil && fs.IsNotExist(err) {
		return nil
	}
	return err
}

// Exists returns true if the given file exists, false otherwise, ignoring any underlying error
func Exists(filePath string) bool {
	exist, _ := LocalFileExist(filePath)
	return exist
}

// LocalFileExist returns true if the given file exists, false otherwise.
func LocalFileExist(path string) (bool, error) {
	_, err := fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if fs.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// IsDirectory returns true or false depending
// if given srcPath is directory or not
func IsDirectory(srcPath string) bool {
	srcFileInfo, err := fs.Stat(srcPath)
	if err != nil {
		return false
	}
	return srcFileInfo.Mode().IsDir()
}

// IsFile returns true or false depending if given
// srcPath is a regular file or not
func IsFile(srcPath string) bool {
	srcFileInfo, err := fs.Stat(srcPath)
	if err != nil {
		return false
	}
	return srcFileInfo.Mode().IsRegular()
}

// MakeDirs create the directories along the path if missing.
func MakeDirs(destinationDir string) (err error) {
	if err = fs.MkdirAll(destinationDir, appconfig.ReadWriteExecuteAccess); err != nil {
		err = fmt.Errorf("failed to create directory %v. %v", destinationDir, err)
	}
	return
}

// WriteFileAtomic writes data to a temporary file next to path and renames it over path, so readers in
// other processes see either the old content or the new content. The rename is retried because on
// windows it fails while another process holds the destination open.
func WriteFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err = MakeDirs(dir); err != nil {
		return err
	}

	var tempPath string
	if tempPath, err = ioUtil.WriteTempFile(dir, "."+filepath.Base(path)+".*.tmp", data); err != nil {
		return fmt.Errorf("failed to write temporary file for %v, %v", path, err)
	}

	policy, err := backoffconfig.GetDefaultExponentialBackoff()
	if err != nil {
		fs.Remove(tempPath)
		return err
	}
	if err = backoff.Retry(func() error { return fs.Rename(tempPath, path) }, policy); err != nil {
		fs.Remove(tempPath)
		return fmt.Errorf("failed to replace %v, %v", path, err)
	}
	return nil
}

// ListFiles returns the names of the regular files in dir with the given suffix, sorted.
// A missing directory yields an empty list.
func ListFiles(dir string, suffix string) ([]string, error) {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		if fs.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list %v, %v", dir, err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ReadTail returns at most maxLines complete lines from the end of the file at path.
func ReadTail(path string, maxLines int) (lines []string, err error) {
	if maxLines <= 0 {
		return []string{}, nil
	}

	file, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	offset := info.Size() - tailReadLimit
	if offset < 0 {
		offset = 0
	}
	if _, err = file.Seek(offset, io.SeekStart); err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), tailReadLimit)
	first := offset > 0
	for scanner.Scan() {
		if first {
			// partial line at the seek position
			first = false
			continue
		}
		lines = append(lines, scanner.Text())
		if len(lines) > maxLines {
			lines = lines[1:]
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []string{}
	}
	return lines, nil
}

// OpenOutputFile creates or truncates the file receiving a server's output.
func OpenOutputFile(path string) (*os.File, error) {
	if err := MakeDirs(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return os.OpenFile(path, appconfig.FileFlagsCreateOrTruncate, appconfig.ReadWriteAccess)
}
