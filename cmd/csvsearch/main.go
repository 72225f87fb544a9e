// Command csvsearch loads CSV and other tabular files into SQLite and runs
// SQL against them interactively or in batch.
package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/fatih/color"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = ""

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCmd(newApp(), programVersion())
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		_, _ = color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// programVersion returns the build-time version, falling back to the module
// version recorded in the binary.
func programVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}
