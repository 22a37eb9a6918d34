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

package locator

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/serverhost/serverhost/agent/launchspec"
)

// skippedDirs are never descended into while scanning.
var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"bin":          true,
	"obj":          true,
}

// manifestPatterns lists, by kind, the file name patterns marking a project, best first.
var manifestPatterns = map[launchspec.Kind][]string{
	launchspec.StandardWeb:             {"*.csproj"},
	launchspec.InProcessHarness:        {"*.csproj"},
	launchspec.DistributedOrchestrator: {"*AppHost*.csproj", "*.csproj"},
	launchspec.Node:                    {"package.json"},
}

// RepositoryStrategy scans the worktree of the git repository enclosing the start directory.
type RepositoryStrategy struct {
	maxDepth int
}

// NewRepositoryStrategy scans the version control root up to maxDepth directories deep.
func NewRepositoryStrategy(maxDepth int) *RepositoryStrategy {
	return &RepositoryStrategy{maxDepth: maxDepth}
}

func (s *RepositoryStrategy) Name() string { return "repository" }

func (s *RepositoryStrategy) Locate(spec launchspec.Spec, start string) (string, bool, error) {
	patterns := manifestPatterns[spec.Kind()]
	if len(patterns) == 0 {
		return "", false, nil
	}
	root, err := RepositoryRoot(start)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", false, nil
		}
		return "", false, err
	}
	path, found := scan(root, patterns, s.maxDepth)
	return path, found, nil
}

// RepositoryRoot returns the worktree root of the git repository containing dir.
func RepositoryRoot(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", err
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return "", err
	}
	return worktree.Filesystem.Root(), nil
}

// ParentWalkStrategy looks for a project next to the start directory and then in each of its parents.
type ParentWalkStrategy struct{}

// NewParentWalkStrategy looks for a project manifest in the start directory and each of its parents.
func NewParentWalkStrategy() *ParentWalkStrategy {
	return &ParentWalkStrategy{}
}

func (s *ParentWalkStrategy) Name() string { return "parent directories" }

func (s *ParentWalkStrategy) Locate(spec launchspec.Spec, start string) (string, bool, error) {
	patterns := manifestPatterns[spec.Kind()]
	if len(patterns) == 0 {
		return "", false, nil
	}
	for _, dir := range ancestors(start) {
		if path, found := scan(dir, patterns, 0); found {
			return path, true, nil
		}
	}
	return "", false, nil
}

// scan finds files under root matching patterns, at most maxDepth directories deep. Earlier patterns win,
// then shallower matches, then the lexically smallest path.
func scan(root string, patterns []string, maxDepth int) (string, bool) {
	type match struct {
		pattern int
		depth   int
		path    string
	}
	var matches []match

	_ = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if entry != nil && entry.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		depth := 0
		if rel != "." {
			depth = strings.Count(rel, string(filepath.Separator))
		}
		if entry.IsDir() {
			if path != root && (skippedDirs[entry.Name()] || depth >= maxDepth) {
				return filepath.SkipDir
			}
			return nil
		}
		for i, pattern := range patterns {
			if ok, _ := filepath.Match(pattern, entry.Name()); ok {
				matches = append(matches, match{pattern: i, depth: depth, path: path})
				break
			}
		}
		return nil
	})

	if len(matches) == 0 {
		return "", false
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].pattern != matches[j].pattern {
			return matches[i].pattern < matches[j].pattern
		}
		if matches[i].depth != matches[j].depth {
			return matches[i].depth < matches[j].depth
		}
		return matches[i].path < matches[j].path
	})
	return matches[0].path, true
}

// ancestors returns dir followed by each of its parents up to the file system root.
func ancestors(dir string) []string {
	dir = filepath.Clean(dir)
	dirs := []string{dir}
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			return dirs
		}
		dirs = append(dirs, parent)
		dir = parent
	}
}

func absolute(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
