package redirect

import (
	"strings"
)

// Translate converts a front-end argument vector into the argv for the
// target tool. The result includes the target name as argv[0]. User
// command arguments keep their relative order; unknown flags pass
// through unmodified.
func (t *Target) Translate(mode Mode, args []string, env []string) ([]string, error) {
	switch mode {
	case ModeRun:
		return t.translateRun(args)
	case ModeVisudo:
		return t.translateVisudo(args)
	case ModeSudoedit:
		return t.translateEdit(args, env)
	}
	return nil, &UnsupportedModeError{Mode: mode, Target: t.Name}
}

func (t *Target) translateRun(args []string) ([]string, error) {
	flags, rest, err := t.translateFlags(args)
	if err != nil {
		return nil, err
	}
	argv := append([]string{t.Name}, flags...)
	return append(argv, rest...), nil
}

func (t *Target) translateVisudo(args []string) ([]string, error) {
	if t.PolicyEditArgs == nil {
		return nil, &UnsupportedModeError{Mode: ModeVisudo, Target: t.Name}
	}
	flags, rest, err := t.translateFlags(args)
	if err != nil {
		return nil, err
	}
	argv := append([]string{t.Name}, t.PolicyEditArgs...)
	argv = append(argv, flags...)
	return append(argv, rest...), nil
}

func (t *Target) translateEdit(args []string, env []string) ([]string, error) {
	flags, files, err := t.translateFlags(args)
	if err != nil {
		return nil, err
	}
	argv := append([]string{t.Name}, flags...)
	if t.EditArgs != nil {
		argv = append(argv, t.EditArgs...)
		return append(argv, files...), nil
	}
	// No native edit mode: elevate the caller's editor instead.
	argv = append(argv, Editor(env)...)
	return append(argv, files...), nil
}

// translateFlags walks the vector once, rewriting flags per the
// target's rule table until the first non-flag token (the user command
// or file list), which is returned untouched along with everything
// after it. A bare "--" ends flag processing the same way.
func (t *Target) translateFlags(args []string) (flags, rest []string, err error) {
	i := 0
	for i < len(args) {
		arg := args[i]

		if arg == "--" {
			return flags, args[i+1:], nil
		}
		if len(arg) < 2 || arg[0] != '-' {
			return flags, args[i:], nil
		}

		name := arg
		value := ""
		hasValue := false
		if strings.HasPrefix(arg, "--") {
			if eq := strings.IndexByte(arg, '='); eq >= 0 {
				name, value, hasValue = arg[:eq], arg[eq+1:], true
			}
		}

		rule, known := t.lookupRule(name, hasValue)
		if !known {
			flags = append(flags, arg)
			i++
			continue
		}

		if rule.TakesValue && !hasValue {
			if i+1 >= len(args) {
				return nil, nil, &TranslationError{
					Flag:   name,
					Target: t.Name,
					Reason: "flag requires a value",
				}
			}
			value = args[i+1]
			i++
		}

		if !rule.mappable() {
			return nil, nil, &TranslationError{Flag: name, Target: t.Name, Reason: rule.Reason}
		}

		switch {
		case rule.Drop:
		case rule.EmitPerValue != "":
			for _, item := range strings.Split(value, ",") {
				if item == "" {
					continue
				}
				flags = append(flags, rule.EmitPerValue+"="+item)
			}
		case rule.EmitJoined != "":
			flags = append(flags, rule.EmitJoined+"="+value)
		case rule.TakesValue:
			flags = append(flags, rule.Emit, value)
		default:
			flags = append(flags, rule.Emit)
		}
		i++
	}
	return flags, nil, nil
}

// lookupRule resolves a flag name against the table. A long flag that
// carried a =value is first looked up under "name=" so valued and bare
// spellings can map differently (sudo's --preserve-env is the case
// that needs this).
func (t *Target) lookupRule(name string, hasValue bool) (FlagRule, bool) {
	if hasValue {
		if rule, ok := t.Rules[name+"="]; ok {
			return rule, true
		}
		if rule, ok := t.Rules[name]; ok && rule.TakesValue {
			return rule, true
		}
		return FlagRule{}, false
	}
	rule, ok := t.Rules[name]
	return rule, ok
}
