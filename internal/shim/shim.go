// Package shim implements the redirector: it resolves the name it was
// invoked under, translates the argument vector for the privilege tool
// actually present on the host, and delegates to it.
package shim

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"privshim/internal/executor"
	"privshim/pkg/redirect"
)

const version = "1.0.0"

// Reserved exit codes. The delegated tool's own codes pass through
// verbatim; these are only produced when delegation never happened.
const (
	ExitUsage       = 2   // unrecognized invocation name or bad arguments
	ExitTranslation = 125 // flag combination the target cannot express
	ExitUnsupported = 126 // invoked mode has no equivalent on the target
	ExitMissingTool = 127 // no target tool installed
)

// Options carries one invocation's inputs. Behavior is a pure function
// of these; the shim holds no state between invocations.
type Options struct {
	Argv   []string // full vector including the invoked name at [0]
	Env    []string
	Exec   executor.Executor
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes the redirector logic and returns the process exit code.
func Run(opts Options) int {
	invokedAs := filepath.Base(opts.Argv[0])
	args := opts.Argv[1:]

	mode, ok := redirect.ModeFor(invokedAs)
	if !ok {
		fmt.Fprintf(opts.Stderr, "%s: unrecognized invocation name %q (expected sudo, visudo, sudoedit or %s)\n",
			redirect.CanonicalName, invokedAs, redirect.CanonicalName)
		return ExitUsage
	}

	// Help and version never escalate, whatever name we run under.
	if len(args) > 0 {
		switch args[0] {
		case "-h", "--help":
			printUsage(opts.Stdout, invokedAs, mode)
			return 0
		case "-V", "--version":
			fmt.Fprintf(opts.Stdout, "%s version %s (%s compatibility shim)\n",
				redirect.CanonicalName, version, mode)
			return 0
		}
	}

	target, path, err := redirect.Detect(opts.Exec.LookPath)
	if err != nil {
		return fail(opts.Stderr, invokedAs, err)
	}

	argv, err := target.Translate(mode, args, opts.Env)
	if err != nil {
		return fail(opts.Stderr, invokedAs, err)
	}

	code, err := opts.Exec.Run(path, argv, opts.Env)
	if err != nil {
		// The tool resolved but could not be started; treat it the
		// same as absent so the caller sees one failure shape.
		fmt.Fprintf(opts.Stderr, "%s [%s]: %v\n", redirect.CanonicalName, invokedAs, err)
		return ExitMissingTool
	}
	return code
}

// fail reports err on stderr and maps it to its reserved exit code.
func fail(stderr io.Writer, invokedAs string, err error) int {
	fmt.Fprintf(stderr, "%s [%s]: %v\n", redirect.CanonicalName, invokedAs, err)

	var missing *redirect.MissingToolError
	var unsupported *redirect.UnsupportedModeError
	var translation *redirect.TranslationError
	switch {
	case errors.As(err, &missing):
		return ExitMissingTool
	case errors.As(err, &unsupported):
		return ExitUnsupported
	case errors.As(err, &translation):
		return ExitTranslation
	}
	return ExitUsage
}

func printUsage(w io.Writer, invokedAs string, mode redirect.Mode) {
	switch mode {
	case redirect.ModeVisudo:
		fmt.Fprintf(w, "usage: %s [flags]\n", invokedAs)
		fmt.Fprintf(w, "Edits the privilege policy via the host's escalation tool, if it has a policy editor.\n")
	case redirect.ModeSudoedit:
		fmt.Fprintf(w, "usage: %s [flags] file ...\n", invokedAs)
		fmt.Fprintf(w, "Edits files with elevated privilege using $VISUAL or $EDITOR.\n")
	default:
		fmt.Fprintf(w, "usage: %s [-u user] [flags] command [args ...]\n", invokedAs)
		fmt.Fprintf(w, "Runs a command with elevated privilege via doas or run0.\n")
	}
	fmt.Fprintf(w, "Flags without a known translation are passed to the underlying tool unmodified.\n")
}
