// Command shim is the privilege-escalation redirector binary.
// It determines which front-end it's impersonating via os.Args[0]
// (resolved through the symlink name it was invoked under), translates
// the arguments for the privilege tool present on the host, and
// delegates to it with the caller's standard streams attached.
package main

import (
	"os"
	"path/filepath"

	"privshim/internal/executor"
	"privshim/internal/shim"
)

func main() {
	os.Exit(shim.Run(shim.Options{
		Argv:   os.Args,
		Env:    os.Environ(),
		Exec:   &executor.Spawn{SkipDir: executableDir()},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}))
}

// executableDir is the directory holding this binary and its links;
// target lookups must never resolve back into it.
func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(exe)
}
