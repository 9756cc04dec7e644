package binding

import (
	"fmt"
	"strings"

	"github.com/ffikit/ffi-bridge/cheader"
	"github.com/ffikit/ffi-bridge/errors"
)

// primitive maps a C base type to its nearest Go equivalent and the cgo
// identifier used in conversions.
type primitive struct {
	goType string
	cName  string
}

var primitives = map[string]primitive{
	"char":               {"int8", "char"},
	"signed char":        {"int8", "schar"},
	"unsigned char":      {"uint8", "uchar"},
	"short":              {"int16", "short"},
	"short int":          {"int16", "short"},
	"unsigned short":     {"uint16", "ushort"},
	"int":                {"int32", "int"},
	"signed":             {"int32", "int"},
	"signed int":         {"int32", "int"},
	"unsigned":           {"uint32", "uint"},
	"unsigned int":       {"uint32", "uint"},
	"long":               {"int64", "long"},
	"long int":           {"int64", "long"},
	"unsigned long":      {"uint64", "ulong"},
	"long long":          {"int64", "longlong"},
	"long long int":      {"int64", "longlong"},
	"unsigned long long": {"uint64", "ulonglong"},
	"float":              {"float32", "float"},
	"double":             {"float64", "double"},
	"float _Complex":     {"complex64", "complexfloat"},
	"double _Complex":    {"complex128", "complexdouble"},
	"size_t":             {"uint", "size_t"},
	"__SIZE_TYPE__":      {"uint", "size_t"},
	"ptrdiff_t":          {"int", "ptrdiff_t"},
	"intptr_t":           {"int", "intptr_t"},
	"uintptr_t":          {"uintptr", "uintptr_t"},
	"int8_t":             {"int8", "int8_t"},
	"int16_t":            {"int16", "int16_t"},
	"int32_t":            {"int32", "int32_t"},
	"int64_t":            {"int64", "int64_t"},
	"uint8_t":            {"uint8", "uint8_t"},
	"uint16_t":           {"uint16", "uint16_t"},
	"uint32_t":           {"uint32", "uint32_t"},
	"uint64_t":           {"uint64", "uint64_t"},
}

// reservedCgo are identifiers cgo predeclares as helpers in every generated
// file. A header type with one of these names cannot get a Go alias, so any
// by-value use of it is unmappable.
var reservedCgo = map[string]bool{
	"CString":   true,
	"CBytes":    true,
	"GoString":  true,
	"GoStringN": true,
	"GoBytes":   true,
}

// unaliasable reports whether a header type name cannot be redeclared in the
// generated Go source.
func unaliasable(name string) bool {
	return strings.HasPrefix(name, "_") || reservedCgo[name]
}

// env indexes the header's type declarations by name so typedef chains can
// be resolved while rendering.
type env map[string]cheader.Decl

func newEnv(decls []cheader.Decl) env {
	e := make(env, len(decls))
	for _, d := range decls {
		switch d.Kind {
		case cheader.DeclTypedef, cheader.DeclRecord, cheader.DeclOpaque:
			e[d.Name] = d
		}
	}
	return e
}

// resolve follows a typedef chain to its terminal type. The depth guard
// turns a self-referential header into an error instead of a hang.
func (e env) resolve(t cheader.Type) (cheader.Type, error) {
	for depth := 0; depth < 32; depth++ {
		if t.Stars > 0 {
			return t, nil
		}
		d, ok := e[t.Base]
		if !ok || d.Kind != cheader.DeclTypedef {
			return t, nil
		}
		t = d.Alias
	}
	return cheader.Type{}, errors.New(errors.PhaseRender, errors.KindInvalidHeader).
		CType(t.Base).
		Detail("typedef chain does not terminate").
		Build()
}

// conv describes how one value crosses the Go/C boundary in a wrapper.
type conv struct {
	goType  string                         // wrapper-visible Go type, "" for void results
	prelude func(tmp, src string) []string // statements emitted before the call
	arg     func(tmp, src string) string   // expression passed to the C function
	fromC   func(call string) string       // wraps the C call result
}

func passthrough(goType string) conv {
	return conv{
		goType: goType,
		arg:    func(_, src string) string { return src },
		fromC:  func(call string) string { return call },
	}
}

func cast(goType, cName string) conv {
	return conv{
		goType: goType,
		arg:    func(_, src string) string { return fmt.Sprintf("C.%s(%s)", cName, src) },
		fromC:  func(call string) string { return fmt.Sprintf("%s(%s)", goType, call) },
	}
}

func (e env) unsupported(t cheader.Type, path []string, detail string) error {
	return errors.New(errors.PhaseRender, errors.KindUnsupported).
		Path(path...).
		CType(t.String()).
		Detail(detail).
		Build()
}

// crossing computes the conversion for one C type. path is the symbol and
// parameter name, used only in errors.
func (e env) crossing(t cheader.Type, path []string) (conv, error) {
	if t.IsVoid() {
		return conv{}, nil
	}

	if t.Stars > 0 {
		return e.pointerCrossing(t, path)
	}

	if t.Base == "_Bool" || t.Base == "bool" {
		return boolCrossing(), nil
	}
	if p, ok := primitives[t.Base]; ok {
		return cast(p.goType, p.cName), nil
	}

	if d, ok := e[t.Base]; ok {
		switch d.Kind {
		case cheader.DeclRecord:
			if unaliasable(d.Name) {
				return conv{}, e.unsupported(t, path, "record type shadows a cgo built-in identifier")
			}
			return passthrough(d.Name), nil
		case cheader.DeclTypedef:
			return e.typedefCrossing(d, t, path)
		case cheader.DeclOpaque:
			return conv{}, e.unsupported(t, path, "opaque struct passed by value")
		}
	}

	if strings.HasPrefix(t.Base, "struct ") {
		return conv{}, e.unsupported(t, path, "struct passed by value")
	}

	return conv{}, e.unsupported(t, path, "no Go equivalent for this C type")
}

// typedefCrossing converts through the typedef's own cgo identifier so call
// sites match the prototype exactly as the header spells it.
func (e env) typedefCrossing(d cheader.Decl, t cheader.Type, path []string) (conv, error) {
	if unaliasable(d.Name) {
		return conv{}, e.unsupported(t, path, "typedef shadows a cgo built-in identifier")
	}

	terminal, err := e.resolve(t)
	if err != nil {
		return conv{}, err
	}

	// Pointer typedefs become opaque handle aliases of unsafe.Pointer.
	if terminal.Stars > 0 {
		return conv{
			goType: d.Name,
			arg:    func(_, src string) string { return fmt.Sprintf("C.%s(%s)", d.Name, src) },
			fromC:  func(call string) string { return fmt.Sprintf("%s(unsafe.Pointer(%s))", d.Name, call) },
		}, nil
	}

	if terminal.Base == "_Bool" || terminal.Base == "bool" {
		return boolCrossing(), nil
	}
	if _, ok := primitives[terminal.Base]; ok {
		return cast(d.Name, d.Name), nil
	}
	if td, ok := e[terminal.Base]; ok && td.Kind == cheader.DeclRecord {
		return passthrough(d.Name), nil
	}
	return conv{}, e.unsupported(terminal, path, "typedef of a C type with no Go equivalent")
}

func (e env) pointerCrossing(t cheader.Type, path []string) (conv, error) {
	// char* crosses as a Go string: copied in, copied out.
	if (t.Base == "char" || t.Base == "signed char") && t.Stars == 1 {
		return conv{
			goType: "string",
			prelude: func(tmp, src string) []string {
				return []string{
					fmt.Sprintf("%s := C.CString(%s)", tmp, src),
					fmt.Sprintf("defer C.free(unsafe.Pointer(%s))", tmp),
				}
			},
			arg:   func(tmp, _ string) string { return tmp },
			fromC: func(call string) string { return fmt.Sprintf("C.GoString(%s)", call) },
		}, nil
	}

	// Pointers to opaque structs keep their name as a typed handle.
	if rest, ok := strings.CutPrefix(t.Base, "struct "); ok {
		if d, found := e[rest]; found && d.Kind == cheader.DeclOpaque && !unaliasable(rest) {
			return passthrough(strings.Repeat("*", t.Stars) + rest), nil
		}
	}

	if t.Base == "void" && t.Stars == 1 {
		return passthrough("unsafe.Pointer"), nil
	}

	// Everything else crosses as an untyped pointer, cast at the call site.
	cName, err := e.cgoName(t.Base, path)
	if err != nil {
		return conv{}, err
	}
	stars := strings.Repeat("*", t.Stars)
	return conv{
		goType: "unsafe.Pointer",
		arg:    func(_, src string) string { return fmt.Sprintf("(%sC.%s)(%s)", stars, cName, src) },
		fromC:  func(call string) string { return fmt.Sprintf("unsafe.Pointer(%s)", call) },
	}, nil
}

// cgoName returns the C.<name> spelling for a base type.
func (e env) cgoName(base string, path []string) (string, error) {
	if p, ok := primitives[base]; ok {
		return p.cName, nil
	}
	if _, ok := e[base]; ok {
		if reservedCgo[base] {
			return "", e.unsupported(cheader.Type{Base: base}, path,
				"type shadows a cgo built-in identifier")
		}
		return base, nil
	}
	if rest, ok := strings.CutPrefix(base, "struct "); ok {
		return "struct_" + rest, nil
	}
	if base == "void" {
		return "void", nil
	}
	return "", e.unsupported(cheader.Type{Base: base}, path, "no Go equivalent for this C type")
}

// boolCrossing handles _Bool, which Go cannot convert with a cast.
func boolCrossing() conv {
	return conv{
		goType: "bool",
		prelude: func(tmp, src string) []string {
			return []string{
				fmt.Sprintf("var %s C._Bool", tmp),
				fmt.Sprintf("if %s {", src),
				fmt.Sprintf("\t%s = true", tmp),
				"}",
			}
		},
		arg:   func(tmp, _ string) string { return tmp },
		fromC: func(call string) string { return fmt.Sprintf("bool(%s)", call) },
	}
}
