package binding

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ffikit/ffi-bridge/cheader"
	"github.com/ffikit/ffi-bridge/errors"
)

var testOpts = Options{Package: "libmod", Header: "libmod.h", LibName: "mod"}

func render(t *testing.T, src string) string {
	t.Helper()
	decls, err := cheader.Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	out, err := Render(decls, testOpts)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return out
}

func TestRender_Preamble(t *testing.T) {
	out := render(t, "extern int Add(int a, int b);")

	for _, want := range []string{
		"// Code generated by ffi-bridge. DO NOT EDIT.",
		"package libmod",
		"#cgo CFLAGS: -I${SRCDIR}",
		"#cgo LDFLAGS: -L${SRCDIR} -lmod",
		`#include "libmod.h"`,
		`import "C"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_Completeness(t *testing.T) {
	out := render(t, `
typedef long long GoInt64;
extern GoInt64 Add(GoInt64 a, GoInt64 b);
extern void Reset(void);
extern double Half(double x);
`)

	// Exactly one wrapper per exported symbol, names preserved.
	for _, sym := range []string{"Add", "Reset", "Half"} {
		if n := strings.Count(out, "func "+sym+"("); n != 1 {
			t.Errorf("symbol %s declared %d times, want 1\n%s", sym, n, out)
		}
	}
	if strings.Contains(out, "func Sub(") {
		t.Error("output contains a symbol the header never declared")
	}
}

func TestRender_Deterministic(t *testing.T) {
	src := `
typedef long long GoInt64;
typedef GoInt64 GoInt;
extern GoInt Add(GoInt a, GoInt b);
extern char* Greet(char* name);
`
	decls, err := cheader.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	a, err := Render(decls, testOpts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Render(decls, testOpts)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("two renders of the same header differ byte-for-byte")
	}
}

func TestRender_TypedefAliases(t *testing.T) {
	out := render(t, `
typedef long long GoInt64;
typedef GoInt64 GoInt;
typedef void *GoMap;
typedef unsigned long long GoUint64;
`)

	for _, want := range []string{
		"type GoInt64 = int64",
		"type GoInt = GoInt64",
		"type GoMap = unsafe.Pointer",
		"type GoUint64 = uint64",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_WrapperBodies(t *testing.T) {
	out := render(t, `
typedef long long GoInt;
extern GoInt Add(GoInt a, GoInt b);
`)

	if !strings.Contains(out, "func Add(a GoInt, b GoInt) GoInt {") {
		t.Errorf("wrapper signature wrong:\n%s", out)
	}
	if !strings.Contains(out, "return GoInt(C.Add(C.GoInt(a), C.GoInt(b)))") {
		t.Errorf("wrapper body wrong:\n%s", out)
	}
}

func TestRender_StringCrossing(t *testing.T) {
	out := render(t, "extern char* Greet(char* name);")

	for _, want := range []string{
		"func Greet(name string) string {",
		"c0 := C.CString(name)",
		"defer C.free(unsafe.Pointer(c0))",
		"return C.GoString(C.Greet(c0))",
		"#include <stdlib.h>",
		`import "unsafe"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_VoidFunction(t *testing.T) {
	out := render(t, "extern void Reset(void);")

	if !strings.Contains(out, "func Reset() {") {
		t.Errorf("void wrapper signature wrong:\n%s", out)
	}
	if !strings.Contains(out, "\tC.Reset()\n") {
		t.Errorf("void wrapper body wrong:\n%s", out)
	}
	if strings.Contains(out, `import "unsafe"`) {
		t.Errorf("unsafe imported but never used:\n%s", out)
	}
	if strings.Contains(out, "stdlib.h") {
		t.Errorf("stdlib.h included but never used:\n%s", out)
	}
}

func TestRender_OpaqueHandles(t *testing.T) {
	out := render(t, `
struct Context;
extern struct Context* NewContext(void);
extern void FreeContext(struct Context* ctx);
`)

	for _, want := range []string{
		"type Context = C.struct_Context",
		"func NewContext() *Context {",
		"return C.NewContext()",
		"func FreeContext(ctx *Context) {",
		"C.FreeContext(ctx)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_BoolCrossing(t *testing.T) {
	out := render(t, "extern _Bool Check(_Bool on);")

	if !strings.Contains(out, "func Check(on bool) bool {") {
		t.Errorf("bool signature wrong:\n%s", out)
	}
	// Go cannot cast a bool, so the wrapper stages it through a C._Bool.
	for _, want := range []string{
		"var c0 C._Bool",
		"if on {",
		"c0 = true",
		"return bool(C.Check(c0))",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_UntypedPointers(t *testing.T) {
	out := render(t, "extern void Fill(int* buf, size_t n);")

	if !strings.Contains(out, "func Fill(buf unsafe.Pointer, n uint) {") {
		t.Errorf("pointer param signature wrong:\n%s", out)
	}
	if !strings.Contains(out, "C.Fill((*C.int)(buf), C.size_t(n))") {
		t.Errorf("pointer cast wrong:\n%s", out)
	}
}

func TestRender_UnnamedAndKeywordParams(t *testing.T) {
	out := render(t, "extern int Mix(int, int type, int map);")

	if !strings.Contains(out, "func Mix(arg0 int32, arg1 int32, arg2 int32) int32 {") {
		t.Errorf("fallback parameter names wrong:\n%s", out)
	}
}

func TestRender_ReservedCgoNamesSkipped(t *testing.T) {
	out := render(t, `
typedef struct { const char *p; ptrdiff_t n; } _GoString_;
typedef _GoString_ GoString;
extern void Noop(void);
`)

	if strings.Contains(out, "type _GoString_") {
		t.Errorf("underscore type must not be redeclared:\n%s", out)
	}
	if strings.Contains(out, "type GoString") {
		t.Errorf("cgo built-in name must not be redeclared:\n%s", out)
	}
	if !strings.Contains(out, "func Noop() {") {
		t.Errorf("remaining declarations must still render:\n%s", out)
	}
}

func TestRender_Errors(t *testing.T) {
	unsupported := &errors.Error{Phase: errors.PhaseRender, Kind: errors.KindUnsupported}

	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"struct_by_value", "struct Big; extern void Take(struct Big b);", "passed by value"},
		{"unknown_type", "extern wchar_t Next(void);", "no Go equivalent"},
		{"keyword_symbol", "extern int func(int a);", "Go keyword"},
		{"reserved_by_value", "typedef struct { int x; } _Pair_; typedef _Pair_ GoString; extern GoString Get(void);", "cgo built-in"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decls, err := cheader.Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			out, err := Render(decls, testOpts)
			if err == nil {
				t.Fatalf("expected error, got output:\n%s", out)
			}
			if !stderrors.Is(err, unsupported) {
				t.Errorf("wrong error kind: %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q missing %q", err, tt.wantErr)
			}
			if out != "" {
				t.Error("failed render must not return partial output")
			}
		})
	}
}

func TestRender_DuplicateSymbol(t *testing.T) {
	decls, err := cheader.Parse("extern void f(void);\nextern void f(void);")
	if err != nil {
		t.Fatal(err)
	}
	_, err = Render(decls, testOpts)
	if err == nil {
		t.Fatal("expected duplicate symbol error")
	}
	if !strings.Contains(err.Error(), "already declared") {
		t.Errorf("error = %v", err)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bindings.go")

	if err := WriteFile(path, "package a\n"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	// Full overwrite, no merging with the previous version.
	if err := WriteFile(path, "package b\n"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "package b\n" {
		t.Errorf("file content = %q", data)
	}
}

func TestWriteFile_Failure(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "bindings.go"), "x")
	if err == nil {
		t.Fatal("expected write failure")
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseRender, Kind: errors.KindWriteFailed}) {
		t.Errorf("wrong error kind: %v", err)
	}
}

func TestRender_StaleSymbolsRegenerated(t *testing.T) {
	before, err := cheader.Parse("extern void f(void);\nextern void g(void);")
	if err != nil {
		t.Fatal(err)
	}
	after, err := cheader.Parse("extern void f(void);")
	if err != nil {
		t.Fatal(err)
	}

	outBefore, err := Render(before, testOpts)
	if err != nil {
		t.Fatal(err)
	}
	outAfter, err := Render(after, testOpts)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(outBefore, "func g(") {
		t.Fatal("precondition: g should be present before the edit")
	}
	if strings.Contains(outAfter, "func g(") {
		t.Error("removed header symbol survived regeneration")
	}
}
