package redirect

import "testing"

func TestModeFor(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		ok   bool
	}{
		{"sudo", ModeRun, true},
		{"visudo", ModeVisudo, true},
		{"sudoedit", ModeSudoedit, true},
		{CanonicalName, ModeRun, true},
		{"doas", 0, false},
		{"su", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, ok := ModeFor(tt.name)
			if ok != tt.ok {
				t.Fatalf("ModeFor(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			}
			if ok && mode != tt.mode {
				t.Errorf("ModeFor(%q) = %v, want %v", tt.name, mode, tt.mode)
			}
		})
	}
}

func TestCanonicalNameIsNotAFrontEnd(t *testing.T) {
	if IsFrontEndName(CanonicalName) {
		t.Fatalf("canonical name %q must not be a front-end name", CanonicalName)
	}
	for _, name := range FrontEndNames() {
		if name == CanonicalName {
			t.Errorf("front-end list contains the canonical name")
		}
		if !IsFrontEndName(name) {
			t.Errorf("IsFrontEndName(%q) = false, want true", name)
		}
	}
}

func TestModeString(t *testing.T) {
	if ModeRun.String() != "sudo" || ModeVisudo.String() != "visudo" || ModeSudoedit.String() != "sudoedit" {
		t.Errorf("unexpected mode names: %v %v %v", ModeRun, ModeVisudo, ModeSudoedit)
	}
}
