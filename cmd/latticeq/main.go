// Command latticeq answers geometric queries about the shapes in a scene file.
//
// Scenes are TOML or YAML files as described by the scene package. Settings
// are read from LATTICE_* environment variables and may be overridden by
// flags.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
