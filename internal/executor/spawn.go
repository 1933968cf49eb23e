package executor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
)

// Spawn runs the target tool as a child process and waits for it.
// stdin, stdout and stderr pass through untouched so interactive
// password prompts and pagers keep working.
type Spawn struct {
	// SkipDir, when set, is excluded from PATH lookups. It is the
	// directory holding the shim's own front-end links; a lookup for
	// the target tool must never resolve back into the shim.
	SkipDir string
}

// LookPath walks PATH for an executable named name, skipping SkipDir.
func (s *Spawn) LookPath(name string) (string, error) {
	if filepath.IsAbs(name) {
		if isExecutable(name) {
			return name, nil
		}
		return "", fmt.Errorf("%s: not an executable file", name)
	}

	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" || sameDir(filepath.Join(dir, name), s.SkipDir) {
			continue
		}
		candidate := filepath.Join(dir, name)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%s: not found in PATH", name)
}

// Run starts path with the given argv and environment and blocks
// until it exits. The child's exit code is returned verbatim; a child
// killed by a signal reports 128+signum, matching shell convention.
func (s *Spawn) Run(path string, argv []string, env []string) (int, error) {
	cmd := exec.Command(path)
	cmd.Args = argv
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("start %s: %w", path, err)
	}

	stop := relaySignals(cmd)
	defer stop()

	err := cmd.Wait()
	if err == nil {
		return 0, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return 128 + int(ws.Signal()), nil
		}
		return exitErr.ExitCode(), nil
	}
	return 0, fmt.Errorf("wait for %s: %w", path, err)
}
