// Package redirect defines the shared contract of the privilege shim:
// which compatibility mode an invocation name selects, which target
// tools can be delegated to, and how front-end flags translate into
// each target's argument conventions.
package redirect

// CanonicalName is the install name of the shim binary. The front-end
// names (sudo, visudo, sudoedit) are symlinks pointing back at it, so
// the canonical name must never collide with a front-end name.
const CanonicalName = "privshim"

// Mode is the compatibility mode selected by the invocation name.
type Mode int

const (
	// ModeRun forwards to the target's "run a command elevated" mode.
	// Selected when invoked as sudo or under the canonical name.
	ModeRun Mode = iota
	// ModeVisudo forwards to the target's policy-file-editing mode.
	ModeVisudo
	// ModeSudoedit edits files with elevated privilege.
	ModeSudoedit
)

func (m Mode) String() string {
	switch m {
	case ModeRun:
		return "sudo"
	case ModeVisudo:
		return "visudo"
	case ModeSudoedit:
		return "sudoedit"
	}
	return "unknown"
}

var modeByName = map[string]Mode{
	"sudo":        ModeRun,
	"visudo":      ModeVisudo,
	"sudoedit":    ModeSudoedit,
	CanonicalName: ModeRun,
}

// ModeFor maps the basename the shim was invoked under to its mode.
// Unrecognized names report !ok instead of defaulting, so a mislinked
// install fails loudly rather than escalating under the wrong mode.
func ModeFor(invokedAs string) (Mode, bool) {
	m, ok := modeByName[invokedAs]
	return m, ok
}

// FrontEndNames returns the names the shim may be linked under,
// in installation order. The canonical name is not among them.
func FrontEndNames() []string {
	return []string{"sudo", "visudo", "sudoedit"}
}

// IsFrontEndName reports whether name is one of the three front-end
// names (and therefore a valid link name for the installer).
func IsFrontEndName(name string) bool {
	_, ok := modeByName[name]
	return ok && name != CanonicalName
}
