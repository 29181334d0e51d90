//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo     = "go"
	binaryDir = "bin"
	scorgCmd  = "./cmd/scorg"
	scorgExe  = "scorg"
)

// releaseTargets are the GOOS/GOARCH pairs built by Release.
var releaseTargets = [][2]string{
	{"linux", "amd64"},
	{"linux", "arm64"},
	{"darwin", "arm64"},
	{"windows", "amd64"},
}

// Build writes a trimmed scorg binary for the host to bin/scorg.
func Build() error {
	mg.Deps(mkBinDir)
	return goBuild(nil, filepath.Join(binaryDir, scorgExe))
}

// Release cross-compiles scorg into bin/<goos>-<goarch>/. The SQLite driver
// is pure Go, so cgo stays off.
func Release() error {
	for _, t := range releaseTargets {
		goos, goarch := t[0], t[1]
		exe := scorgExe
		if goos == "windows" {
			exe += ".exe"
		}
		out := filepath.Join(binaryDir, goos+"-"+goarch, exe)
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := goBuild(env, out); err != nil {
			return fmt.Errorf("release %s/%s: %w", goos, goarch, err)
		}
	}
	return nil
}

// Install runs go install on the scorg command.
func Install() error {
	return sh.RunV(binGo, "install", "-trimpath", scorgCmd)
}

// Clean removes bin/, which also holds release builds and coverage output.
func Clean() error {
	return os.RemoveAll(binaryDir)
}

func goBuild(env map[string]string, out string) error {
	return sh.RunWithV(env, binGo, "build", "-trimpath", "-o", out, scorgCmd)
}
