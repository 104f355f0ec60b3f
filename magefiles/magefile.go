//go:build mage

// Package main contains Mage build targets for pdftool.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "pdftool"
	tempDir = "temp"
)

// Default target when mage runs without arguments.
var Default = Build

// Build compiles the pdftool binary into bin/.
func Build() error {
	mg.Deps(Vet)

	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	if err := sh.RunV("go", "build", "-ldflags", "-X main.version="+version, "-o", out, "."); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "-count=1", "./...")
}

// Vet runs go vet over every package.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Serve builds and starts the HTTP API with debug logging.
func Serve() error {
	mg.Deps(Build)
	return sh.RunWithV(map[string]string{"PDFTOOL_LOG_LEVEL": "debug"},
		filepath.Join(binDir, binName), "serve")
}

// Clean removes build output and the upload staging directory.
func Clean() error {
	for _, dir := range []string{binDir, tempDir} {
		if err := sh.Rm(dir); err != nil {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
	}
	return nil
}
