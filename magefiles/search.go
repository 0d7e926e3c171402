//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Search builds the CLI and runs a patent search, printing a result table.
func Search(query string) error {
	mg.Deps(Build)
	return sh.RunV(binPath, "search", query)
}

// Fetch builds the CLI and prints one patent's claims and description.
func Fetch(patent string) error {
	mg.Deps(Build)
	return sh.RunV(binPath, "fetch", patent, "--include", "metadata,claims,description")
}
