package redirect

import "strings"

// defaultEditor is used when neither VISUAL nor EDITOR is set.
const defaultEditor = "vi"

// Editor picks the editor argv for composed sudoedit invocations.
// VISUAL wins over EDITOR, matching sudo's own ordering, and the
// selection is split on whitespace so values like "code -w" work.
func Editor(env []string) []string {
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if v, ok := envValue(env, key); ok && strings.TrimSpace(v) != "" {
			return strings.Fields(v)
		}
	}
	return []string{defaultEditor}
}

// envValue extracts the value of key from a "KEY=VALUE" environment
// slice. The last occurrence wins, as it does for execve.
func envValue(env []string, key string) (string, bool) {
	val, found := "", false
	prefix := key + "="
	for _, entry := range env {
		if strings.HasPrefix(entry, prefix) {
			val, found = entry[len(prefix):], true
		}
	}
	return val, found
}
