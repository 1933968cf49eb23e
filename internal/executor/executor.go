// Package executor runs the delegated target tool with the caller's
// standard streams attached, reporting its exit code exactly.
package executor

import (
	"os"
	"path/filepath"
)

// Executor is the delegation strategy used by the shim. Tests
// substitute a recording stub; production uses Spawn.
type Executor interface {
	// LookPath resolves a tool name to an executable path.
	LookPath(name string) (string, error)
	// Run executes argv[0..] at path and returns the exit code.
	// Standard streams are inherited from the calling process.
	Run(path string, argv []string, env []string) (int, error)
}

// isExecutable reports whether path is a regular file with at least
// one execute bit set.
func isExecutable(path string) bool {
	stat, err := os.Stat(path)
	if err != nil {
		return false
	}
	return stat.Mode().IsRegular() && stat.Mode()&0111 != 0
}

// sameDir reports whether path sits directly inside dir.
func sameDir(path, dir string) bool {
	if dir == "" {
		return false
	}
	return filepath.Clean(filepath.Dir(path)) == filepath.Clean(dir)
}
