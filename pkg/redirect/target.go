package redirect

// FlagRule describes how one front-end flag maps onto a target tool.
// Exactly one of the emit fields (or Drop) applies. A rule with no
// emit form and Drop unset marks a flag the target cannot express;
// Reason says why. Flags absent from a target's table pass through
// unmodified — the underlying tool is the authority on unknown flags.
type FlagRule struct {
	// TakesValue marks flags that consume the next argument
	// (or a =value suffix in their long spelling).
	TakesValue bool

	// Emit writes the flag as-is or as an "Emit value" pair.
	Emit string
	// EmitJoined writes the flag as "EmitJoined=value".
	EmitJoined string
	// EmitPerValue splits a comma-separated value and writes
	// "EmitPerValue=item" once per item.
	EmitPerValue string
	// Drop removes the flag: the target already behaves that way.
	Drop bool

	// Reason explains an unmappable flag.
	Reason string
}

func (r FlagRule) mappable() bool {
	return r.Drop || r.Emit != "" || r.EmitJoined != "" || r.EmitPerValue != ""
}

// Target describes one privilege-escalation tool the shim can
// delegate to.
type Target struct {
	// Name is the executable name looked up on PATH.
	Name string

	// EditArgs, when non-nil, is the argv prefix of the tool's native
	// file-edit mode. Targets without one get a composed elevated
	// editor invocation instead.
	EditArgs []string

	// PolicyEditArgs, when non-nil, is the argv prefix of the tool's
	// policy-editing mode (the visudo equivalent). Targets without
	// one refuse ModeVisudo outright.
	PolicyEditArgs []string

	// Rules maps front-end flags, in both short and long spellings,
	// to their translations. Long flags that carry a =value are
	// looked up under "name=" first, so valued and bare forms of the
	// same flag can translate differently.
	Rules map[string]FlagRule
}

// Doas describes the OpenBSD doas(1) target.
func Doas() *Target {
	noPerInvocationEnv := "doas takes its environment policy from doas.conf keepenv, not per invocation"
	return &Target{
		Name: "doas",
		Rules: map[string]FlagRule{
			"-u":     {TakesValue: true, Emit: "-u"},
			"--user": {TakesValue: true, Emit: "-u"},

			"-n":                {Emit: "-n"},
			"--non-interactive": {Emit: "-n"},

			"-s":      {Emit: "-s"},
			"--shell": {Emit: "-s"},

			"-E":              {Reason: noPerInvocationEnv},
			"--preserve-env":  {Reason: noPerInvocationEnv},
			"--preserve-env=": {TakesValue: true, Reason: noPerInvocationEnv},

			"-i":      {Reason: "doas has no login-shell mode"},
			"--login": {Reason: "doas has no login-shell mode"},

			"-g":      {TakesValue: true, Reason: "doas cannot run with a different primary group"},
			"--group": {TakesValue: true, Reason: "doas cannot run with a different primary group"},

			"-D":      {TakesValue: true, Reason: "doas has no working-directory option"},
			"--chdir": {TakesValue: true, Reason: "doas has no working-directory option"},

			"-v":         {Reason: "doas has no credential-caching to refresh"},
			"--validate": {Reason: "doas has no credential-caching to refresh"},

			// doas always resets HOME for the target user.
			"-H":         {Drop: true},
			"--set-home": {Drop: true},
		},
	}
}

// Run0 describes the systemd run0(1) target used on the Fedora-Atomic
// variant.
func Run0() *Target {
	freshScope := "run0 starts the command in a fresh session scope; name the variables to carry over with --preserve-env=A,B"
	return &Target{
		Name: "run0",
		Rules: map[string]FlagRule{
			"-u":     {TakesValue: true, EmitJoined: "--user"},
			"--user": {TakesValue: true, EmitJoined: "--user"},

			"-g":      {TakesValue: true, EmitJoined: "--group"},
			"--group": {TakesValue: true, EmitJoined: "--group"},

			"-n":                {Emit: "--no-ask-password"},
			"--non-interactive": {Emit: "--no-ask-password"},

			"-D":      {TakesValue: true, EmitJoined: "--chdir"},
			"--chdir": {TakesValue: true, EmitJoined: "--chdir"},

			"-E":              {Reason: freshScope},
			"--preserve-env":  {Reason: freshScope},
			"--preserve-env=": {TakesValue: true, EmitPerValue: "--setenv"},

			"-s":      {Reason: "run0 opens a shell only when given no command; invoke the shell explicitly"},
			"--shell": {Reason: "run0 opens a shell only when given no command; invoke the shell explicitly"},

			"-i":      {Reason: "run0 has no login-shell mode"},
			"--login": {Reason: "run0 has no login-shell mode"},

			"-v":         {Reason: "run0 has no credential-caching to refresh"},
			"--validate": {Reason: "run0 has no credential-caching to refresh"},

			// run0 sets up HOME for the target user itself.
			"-H":         {Drop: true},
			"--set-home": {Drop: true},
		},
	}
}

// Candidates lists the known targets in detection order.
func Candidates() []*Target {
	return []*Target{Doas(), Run0()}
}

// Detect probes the candidates in order and returns the first tool
// installed on the host, together with its resolved path.
func Detect(lookPath func(string) (string, error)) (*Target, string, error) {
	names := make([]string, 0, 2)
	for _, t := range Candidates() {
		path, err := lookPath(t.Name)
		if err == nil {
			return t, path, nil
		}
		names = append(names, t.Name)
	}
	return nil, "", &MissingToolError{Tools: names}
}
