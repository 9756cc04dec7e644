package errors

import (
	"errors"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseParse,
				Kind:   KindUnsupported,
				Path:   []string{"Frobnicate", "cb"},
				CType:  "int (*)(int)",
				Detail: "function pointer parameters cannot be bound",
			},
			contains: []string{"[parse]", "unsupported", "Frobnicate.cb", "int (*)(int)", "cannot be bound"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseEmit,
				Kind:  KindWriteFailed,
			},
			contains: []string{"[emit]", "write_failed"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseInvoke,
				Kind:   KindCompileFailed,
				Detail: "toolchain exited with failure",
				Cause:  errors.New("exit status 2"),
			},
			contains: []string{"[invoke]", "compile_failed", "toolchain exited", "caused by", "exit status 2"},
		},
		{
			name: "error with line number",
			err: &Error{
				Phase:  PhaseParse,
				Kind:   KindInvalidHeader,
				Line:   17,
				Detail: "expected ';'",
			},
			contains: []string{"[parse]", "invalid_header", "line 17", "expected ';'"},
		},
		{
			name: "error with diagnostic output",
			err: &Error{
				Phase:      PhaseInvoke,
				Kind:       KindCompileFailed,
				Detail:     "toolchain exited with failure",
				Diagnostic: "./mod.go:3:1: syntax error\n",
			},
			contains: []string{"[invoke]", "syntax error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsSubstring(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseInvoke,
		Kind:  KindCompileFailed,
		Cause: cause,
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestError_Is(t *testing.T) {
	err := ToolchainMissing("zig", errors.New("executable file not found"))

	if !errors.Is(err, &Error{Phase: PhaseInvoke, Kind: KindToolchainMissing}) {
		t.Error("should match same phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseInvoke, Kind: KindCompileFailed}) {
		t.Error("should not match a different kind")
	}
	if errors.Is(err, &Error{Phase: PhaseParse, Kind: KindToolchainMissing}) {
		t.Error("should not match a different phase")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("underlying")
	err := New(PhaseRender, KindUnsupported).
		Path("CallMeMaybe").
		CType("va_list").
		GoType("").
		Line(42).
		Detail("no Go equivalent for %s", "va_list").
		Cause(cause).
		Build()

	if err.Phase != PhaseRender || err.Kind != KindUnsupported {
		t.Errorf("phase/kind = %s/%s", err.Phase, err.Kind)
	}
	if err.Detail != "no Go equivalent for va_list" {
		t.Errorf("detail = %q", err.Detail)
	}
	if err.Line != 42 {
		t.Errorf("line = %d", err.Line)
	}
	if err.Cause != cause {
		t.Error("cause not set")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("toolchain missing", func(t *testing.T) {
		err := ToolchainMissing("go", errors.New("not found"))
		if err.Kind != KindToolchainMissing {
			t.Errorf("kind = %s", err.Kind)
		}
		if !containsSubstring(err.Error(), `"go"`) {
			t.Errorf("message should name the executable: %s", err.Error())
		}
	})

	t.Run("compile failed carries diagnostics", func(t *testing.T) {
		err := CompileFailed("go", errors.New("exit status 1"), "mod.go:1:1: expected 'package'")
		if err.Kind != KindCompileFailed {
			t.Errorf("kind = %s", err.Kind)
		}
		if !containsSubstring(err.Error(), "expected 'package'") {
			t.Errorf("message should carry toolchain output: %s", err.Error())
		}
	})

	t.Run("invalid header", func(t *testing.T) {
		err := InvalidHeader(9, "unexpected token")
		if err.Phase != PhaseParse || err.Line != 9 {
			t.Errorf("phase/line = %s/%d", err.Phase, err.Line)
		}
	})

	t.Run("write failed wraps cause", func(t *testing.T) {
		cause := errors.New("permission denied")
		err := WriteFailed("/out/bindings.go", cause)
		if !errors.Is(err, cause) {
			t.Error("cause not reachable via errors.Is")
		}
	})
}

func containsSubstring(s, substr string) bool {
	if len(substr) == 0 {
		return true
	}
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
