//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test groups test targets.
type Test mg.Namespace

// All runs every test with the race detector.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Unit runs the tests that do not touch SQLite on disk or the CLI.
func (Test) Unit() error {
	return sh.RunV(binGo, "test", "-v",
		"./pkg/types/...",
		"./internal/memdao/...",
		"./internal/paths/...",
		"./internal/logging/...",
	)
}

// Store runs the SQLite, service, importer and report tests.
func (Test) Store() error {
	return sh.RunV(binGo, "test", "-v",
		"./internal/sqlite/...",
		"./pkg/sqlite/...",
		"./internal/services/...",
		"./internal/importer/...",
		"./internal/report/...",
	)
}

// CLI builds first, then runs the command-line tests.
func (Test) CLI() error {
	mg.Deps(Build)
	return sh.RunV(binGo, "test", "-v", "./internal/cli/...")
}

// Cover writes a coverage profile to bin/coverage.out and prints the summary.
func (Test) Cover() error {
	mg.Deps(mkBinDir)
	profile := binaryDir + "/coverage.out"
	if err := sh.RunV(binGo, "test", "-coverprofile", profile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func", profile)
}
