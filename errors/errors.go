package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which pipeline stage the error occurred in
type Phase string

const (
	PhaseConfig Phase = "config" // configuration loading and validation
	PhaseInvoke Phase = "invoke" // foreign toolchain invocation
	PhaseParse  Phase = "parse"  // generated header parsing
	PhaseRender Phase = "render" // binding source generation
	PhaseEmit   Phase = "emit"   // build-system directive emission
)

// Kind categorizes the error
type Kind string

const (
	KindToolchainMissing Kind = "toolchain_missing"
	KindCompileFailed    Kind = "compile_failed"
	KindInvalidHeader    Kind = "invalid_header"
	KindUnsupported      Kind = "unsupported"
	KindWriteFailed      Kind = "write_failed"
	KindInvalidConfig    Kind = "invalid_config"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Cause      error
	Phase      Phase
	Kind       Kind
	CType      string
	GoType     string
	Detail     string
	Diagnostic string // captured foreign toolchain output, verbatim
	Path       []string
	Line       int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}

	if e.CType != "" || e.GoType != "" {
		b.WriteString(": ")
		if e.CType != "" && e.GoType != "" {
			b.WriteString("C type ")
			b.WriteString(e.CType)
			b.WriteString(", Go type ")
			b.WriteString(e.GoType)
		} else if e.CType != "" {
			b.WriteString("C type ")
			b.WriteString(e.CType)
		} else {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		}
	}

	if e.Detail != "" {
		if e.CType != "" || e.GoType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	if e.Diagnostic != "" {
		b.WriteString("\n")
		b.WriteString(strings.TrimRight(e.Diagnostic, "\n"))
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the declaration path (symbol name, parameter name)
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Line sets the header line number
func (b *Builder) Line(n int) *Builder {
	b.err.Line = n
	return b
}

// CType sets the C type name
func (b *Builder) CType(t string) *Builder {
	b.err.CType = t
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Diagnostic attaches captured subprocess output
func (b *Builder) Diagnostic(out string) *Builder {
	b.err.Diagnostic = out
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// ToolchainMissing creates an error for an absent foreign toolchain executable.
// Kept distinct from CompileFailed so callers can tell "not installed" apart
// from "installed but the source does not compile".
func ToolchainMissing(executable string, cause error) *Error {
	return &Error{
		Phase:  PhaseInvoke,
		Kind:   KindToolchainMissing,
		Detail: fmt.Sprintf("foreign toolchain %q not found in environment", executable),
		Cause:  cause,
	}
}

// CompileFailed creates an error for a non-zero foreign toolchain exit,
// carrying the toolchain's own diagnostic output verbatim.
func CompileFailed(executable string, cause error, output string) *Error {
	return &Error{
		Phase:      PhaseInvoke,
		Kind:       KindCompileFailed,
		Detail:     fmt.Sprintf("foreign toolchain %q exited with failure", executable),
		Cause:      cause,
		Diagnostic: output,
	}
}

// Unsupported creates an error for a header construct with no Go equivalent
func Unsupported(phase Phase, path []string, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Path:   path,
		Detail: what,
	}
}

// InvalidHeader creates a header syntax error
func InvalidHeader(line int, detail string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidHeader,
		Line:   line,
		Detail: detail,
	}
}

// WriteFailed creates a binding file write error
func WriteFailed(path string, cause error) *Error {
	return &Error{
		Phase:  PhaseRender,
		Kind:   KindWriteFailed,
		Detail: fmt.Sprintf("write binding file %s", path),
		Cause:  cause,
	}
}

// InvalidConfig creates a configuration error
func InvalidConfig(detail string) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindInvalidConfig,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
