//go:build mage

// Package main provides build targets for the wardrobe project using Mage.
//
// Usage:
//
//	mage build             Compile wardrobe binary to bin/
//	mage install           Install wardrobe to GOPATH/bin
//	mage test:all          Run all tests
//	mage test:unit         Run tests without the race detector or cache
//	mage test:cover        Write coverage to coverage.out
//	mage lint              Run golangci-lint
//	mage validate <file>   Check a catalog payload
//	mage stats             Print Go LOC and built-in catalog size
//	mage clean             Remove build artifacts
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "wardrobe"
	binaryDir  = "bin"
	cmdDir     = "./cmd/wardrobe"
)

// Build compiles the wardrobe binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// Clean removes build artifacts.
func Clean() error {
	for _, p := range []string{binaryDir, coverFile} {
		if err := os.RemoveAll(p); err != nil {
			return err
		}
	}
	return sh.RunV(binGo, "clean")
}
