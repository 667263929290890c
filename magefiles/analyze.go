//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Analyze builds the binary and prints the analysis of one text file.
func Analyze(path string) error {
	mg.Deps(Build)
	return sh.RunV(binPath, "analyze", path)
}

// Types builds the binary and lists the supported paper types.
func Types() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "types")
}
