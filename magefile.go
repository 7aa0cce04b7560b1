//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "selectrans"

// Default target to run when none is specified.
var Default = Build

// Build compiles the selectrans binary. The SQLite store needs cgo.
func Build() error {
	env := map[string]string{"CGO_ENABLED": "1"}
	return sh.RunWithV(env, "go", "build", "-o", binary, "./cmd/selectrans")
}

// Test runs all tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs vet and the tests.
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Install copies the binary to ~/go/bin.
func Install() error {
	mg.Deps(Build)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dest := filepath.Join(home, "go", "bin", binary)
	if err := sh.Copy(dest, binary); err != nil {
		return fmt.Errorf("failed to install %s: %w", binary, err)
	}
	return os.Chmod(dest, 0755)
}

// Clean removes the built binary.
func Clean() error {
	return sh.Rm(binary)
}
