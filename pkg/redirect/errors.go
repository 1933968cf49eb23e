package redirect

import (
	"fmt"
	"strings"
)

// MissingToolError reports that no candidate target tool is installed
// on the host, or that a specific tool vanished between lookup and exec.
type MissingToolError struct {
	Tools []string
}

func (e *MissingToolError) Error() string {
	if len(e.Tools) == 1 {
		return fmt.Sprintf("privilege tool %s not found or not executable", e.Tools[0])
	}
	return fmt.Sprintf("no privilege tool found (looked for %s)", strings.Join(e.Tools, ", "))
}

// UnsupportedModeError reports that the invoked front-end mode has no
// equivalent on the selected target tool.
type UnsupportedModeError struct {
	Mode   Mode
	Target string
}

func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("%s has no %s equivalent", e.Target, e.Mode)
}

// TranslationError reports a flag that the target tool cannot express.
// These are fatal: silently dropping or best-effort-translating a
// privilege flag is worse than refusing.
type TranslationError struct {
	Flag   string
	Target string
	Reason string
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("cannot translate %s for %s: %s", e.Flag, e.Target, e.Reason)
}
