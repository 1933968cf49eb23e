package shim

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// fakeExec records the delegation the shim asked for and returns a
// canned exit code, standing in for the target tool.
type fakeExec struct {
	installed map[string]string // tool name -> path
	code      int
	runErr    error

	runs    int
	ranPath string
	ranArgv []string
}

func (f *fakeExec) LookPath(name string) (string, error) {
	if path, ok := f.installed[name]; ok {
		return path, nil
	}
	return "", errors.New("not found")
}

func (f *fakeExec) Run(path string, argv []string, env []string) (int, error) {
	f.runs++
	f.ranPath = path
	f.ranArgv = argv
	if f.runErr != nil {
		return 0, f.runErr
	}
	return f.code, nil
}

func run(t *testing.T, exec *fakeExec, argv []string, env []string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(Options{
		Argv:   argv,
		Env:    env,
		Exec:   exec,
		Stdout: &stdout,
		Stderr: &stderr,
	})
	return code, stdout.String(), stderr.String()
}

func doasInstalled() *fakeExec {
	return &fakeExec{installed: map[string]string{"doas": "/usr/bin/doas"}}
}

func TestDispatchByInvokedName(t *testing.T) {
	tests := []struct {
		name     string
		argv     []string
		wantArgv []string
	}{
		{
			name:     "sudo forwards verbatim",
			argv:     []string{"/usr/local/bin/sudo", "id", "-un"},
			wantArgv: []string{"doas", "id", "-un"},
		},
		{
			name:     "canonical name behaves like sudo",
			argv:     []string{"/usr/local/libexec/privshim/privshim", "id"},
			wantArgv: []string{"doas", "id"},
		},
		{
			name:     "sudoedit composes an elevated editor",
			argv:     []string{"sudoedit", "file.txt"},
			wantArgv: []string{"doas", "myeditor", "file.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := doasInstalled()
			code, _, stderr := run(t, exec, tt.argv, []string{"EDITOR=myeditor"})
			if code != 0 {
				t.Fatalf("exit code = %d, stderr: %s", code, stderr)
			}
			if exec.runs != 1 {
				t.Fatalf("target spawned %d times, want 1", exec.runs)
			}
			if exec.ranPath != "/usr/bin/doas" {
				t.Errorf("ran path = %q, want /usr/bin/doas", exec.ranPath)
			}
			if !reflect.DeepEqual(exec.ranArgv, tt.wantArgv) {
				t.Errorf("delegated argv = %v, want %v", exec.ranArgv, tt.wantArgv)
			}
		})
	}
}

func TestUnrecognizedInvocationName(t *testing.T) {
	exec := doasInstalled()
	code, _, stderr := run(t, exec, []string{"/usr/bin/frobnicate", "id"}, nil)
	if code != ExitUsage {
		t.Fatalf("exit code = %d, want %d", code, ExitUsage)
	}
	if exec.runs != 0 {
		t.Errorf("target spawned for unrecognized name")
	}
	if !strings.Contains(stderr, "frobnicate") {
		t.Errorf("stderr %q does not name the bad invocation", stderr)
	}
}

func TestExitCodeFidelity(t *testing.T) {
	for code := 0; code <= 255; code++ {
		exec := doasInstalled()
		exec.code = code
		got, _, _ := run(t, exec, []string{"sudo", "false"}, nil)
		if got != code {
			t.Fatalf("delegated exit %d reported as %d", code, got)
		}
	}
}

func TestMissingTool(t *testing.T) {
	exec := &fakeExec{}
	code, _, stderr := run(t, exec, []string{"sudo", "id"}, nil)
	if code != ExitMissingTool {
		t.Fatalf("exit code = %d, want %d", code, ExitMissingTool)
	}
	if exec.runs != 0 {
		t.Errorf("target spawned despite being missing")
	}
	if !strings.Contains(stderr, "doas") || !strings.Contains(stderr, "run0") {
		t.Errorf("stderr %q does not name the missing tools", stderr)
	}
}

func TestVisudoUnsupported(t *testing.T) {
	exec := doasInstalled()
	code, _, stderr := run(t, exec, []string{"visudo"}, nil)
	if code != ExitUnsupported {
		t.Fatalf("exit code = %d, want %d", code, ExitUnsupported)
	}
	if exec.runs != 0 {
		t.Errorf("target spawned for an unsupported mode")
	}
	if !strings.Contains(stderr, "visudo") {
		t.Errorf("stderr %q does not name the unsupported mode", stderr)
	}
}

func TestUntranslatableFlag(t *testing.T) {
	exec := doasInstalled()
	code, _, stderr := run(t, exec, []string{"sudo", "-E", "env"}, nil)
	if code != ExitTranslation {
		t.Fatalf("exit code = %d, want %d", code, ExitTranslation)
	}
	if exec.runs != 0 {
		t.Errorf("target spawned despite untranslatable flag")
	}
	if !strings.Contains(stderr, "-E") {
		t.Errorf("stderr %q does not name the offending flag", stderr)
	}
}

func TestHelpAndVersionNeverEscalate(t *testing.T) {
	for _, invokedAs := range []string{"sudo", "visudo", "sudoedit", "privshim"} {
		for _, flag := range []string{"-h", "--help", "-V", "--version"} {
			t.Run(invokedAs+" "+flag, func(t *testing.T) {
				exec := doasInstalled()
				code, stdout, _ := run(t, exec, []string{invokedAs, flag}, nil)
				if code != 0 {
					t.Fatalf("exit code = %d, want 0", code)
				}
				if exec.runs != 0 {
					t.Fatalf("target spawned for %s", flag)
				}
				if stdout == "" {
					t.Errorf("no output for %s", flag)
				}
			})
		}
	}
}

func TestRun0Selected(t *testing.T) {
	exec := &fakeExec{installed: map[string]string{"run0": "/usr/bin/run0"}}
	code, _, stderr := run(t, exec, []string{"sudo", "-u", "root", "id"}, nil)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	want := []string{"run0", "--user=root", "id"}
	if !reflect.DeepEqual(exec.ranArgv, want) {
		t.Errorf("delegated argv = %v, want %v", exec.ranArgv, want)
	}
}

func TestStartFailureReportsMissingTool(t *testing.T) {
	exec := doasInstalled()
	exec.runErr = errors.New("exec format error")
	code, _, stderr := run(t, exec, []string{"sudo", "id"}, nil)
	if code != ExitMissingTool {
		t.Fatalf("exit code = %d, want %d", code, ExitMissingTool)
	}
	if !strings.Contains(stderr, "exec format error") {
		t.Errorf("stderr %q does not carry the start failure", stderr)
	}
}
