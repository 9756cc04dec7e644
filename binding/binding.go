package binding

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/ffikit/ffi-bridge/cheader"
	"github.com/ffikit/ffi-bridge/errors"
)

// Options configures binding generation.
type Options struct {
	Package string // package clause of the generated file
	Header  string // generated header file name for the #include line
	LibName string // archive base name, linked as -l<LibName>
}

var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true,
	"for": true, "func": true, "go": true, "goto": true, "if": true,
	"import": true, "interface": true, "map": true, "package": true,
	"range": true, "return": true, "select": true, "struct": true,
	"switch": true, "type": true, "var": true,
}

// Render generates cgo binding source for the parsed header declarations.
// Render is pure and deterministic: declarations are emitted in source
// order, one group per exported header construct, names preserved exactly.
//
// Any declaration that cannot be mapped fails the whole render; no partial
// output is returned.
func Render(decls []cheader.Decl, opts Options) (string, error) {
	if opts.Package == "" {
		return "", errors.InvalidConfig("binding package name is empty")
	}
	if opts.Header == "" {
		return "", errors.InvalidConfig("generated header name is empty")
	}

	e := newEnv(decls)

	var body strings.Builder
	seen := make(map[string]int, len(decls))

	for _, d := range decls {
		if line, dup := seen[d.Name]; dup {
			return "", errors.New(errors.PhaseRender, errors.KindInvalidHeader).
				Path(d.Name).
				Line(d.Line).
				Detail("symbol already declared at line %d", line).
				Build()
		}
		seen[d.Name] = d.Line

		var (
			src string
			err error
		)
		switch d.Kind {
		case cheader.DeclTypedef:
			src, err = renderTypedef(e, d)
		case cheader.DeclRecord:
			src = renderRecord(d)
		case cheader.DeclOpaque:
			src = renderOpaque(d)
		case cheader.DeclFunc:
			src, err = renderFunc(e, d)
		}
		if err != nil {
			return "", err
		}
		if src != "" {
			body.WriteString(src)
			body.WriteByte('\n')
		}
	}

	// Imports and includes are derived from what the body actually uses so
	// the generated file never carries an unused import.
	usesUnsafe := strings.Contains(body.String(), "unsafe.")
	usesStdlib := strings.Contains(body.String(), "C.free(")

	var out strings.Builder
	out.WriteString("// Code generated by ffi-bridge. DO NOT EDIT.\n\n")
	fmt.Fprintf(&out, "package %s\n\n", opts.Package)
	out.WriteString("/*\n")
	out.WriteString("#cgo CFLAGS: -I${SRCDIR}\n")
	if opts.LibName != "" {
		fmt.Fprintf(&out, "#cgo LDFLAGS: -L${SRCDIR} -l%s\n", opts.LibName)
	}
	if usesStdlib {
		out.WriteString("#include <stdlib.h>\n")
	}
	fmt.Fprintf(&out, "#include %q\n", opts.Header)
	out.WriteString("*/\n")
	out.WriteString("import \"C\"\n\n")
	if usesUnsafe {
		out.WriteString("import \"unsafe\"\n\n")
	}
	out.WriteString(body.String())

	Logger().Debug("rendered bindings",
		zap.String("package", opts.Package),
		zap.Int("declarations", len(decls)),
	)
	return out.String(), nil
}

// WriteFile fully overwrites path with the rendered binding source. There
// is no incremental merge: header content may change symbol-for-symbol
// between runs, so regeneration from scratch is the only safe mode.
func WriteFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.WriteFailed(path, err)
	}
	return nil
}

func renderTypedef(e env, d cheader.Decl) (string, error) {
	if unaliasable(d.Name) {
		// cgo already owns this identifier; the C type stays reachable as
		// C.<name> and by-value uses are rejected during crossing.
		return "", nil
	}

	target, err := typedefTarget(e, d)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("// %s mirrors the C typedef of the same name.\ntype %s = %s\n",
		d.Name, d.Name, target), nil
}

func typedefTarget(e env, d cheader.Decl) (string, error) {
	if d.Alias.Stars > 0 {
		return "unsafe.Pointer", nil
	}
	base := d.Alias.Base
	if p, ok := primitives[base]; ok {
		return p.goType, nil
	}
	if base == "_Bool" || base == "bool" {
		return "bool", nil
	}
	if target, ok := e[base]; ok {
		switch target.Kind {
		case cheader.DeclTypedef:
			if !unaliasable(base) {
				return base, nil
			}
			return typedefTarget(e, target)
		case cheader.DeclRecord:
			if !unaliasable(base) {
				return base, nil
			}
			return "C." + base, nil
		}
	}
	return "", errors.New(errors.PhaseRender, errors.KindUnsupported).
		Path(d.Name).
		Line(d.Line).
		CType(d.Alias.String()).
		Detail("typedef of a C type with no Go equivalent").
		Build()
}

func renderRecord(d cheader.Decl) string {
	if unaliasable(d.Name) {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "// %s mirrors the C struct typedef of the same name", d.Name)
	if len(d.Fields) > 0 {
		names := make([]string, len(d.Fields))
		for i, f := range d.Fields {
			names[i] = f.Name
		}
		fmt.Fprintf(&b, " (members: %s)", strings.Join(names, ", "))
	}
	b.WriteString(".\n")
	fmt.Fprintf(&b, "type %s = C.%s\n", d.Name, d.Name)
	return b.String()
}

func renderOpaque(d cheader.Decl) string {
	if unaliasable(d.Name) {
		return ""
	}
	return fmt.Sprintf("// %s is an opaque foreign type, accessed only through pointers.\ntype %s = C.struct_%s\n",
		d.Name, d.Name, d.Name)
}

func renderFunc(e env, d cheader.Decl) (string, error) {
	if goKeywords[d.Name] {
		return "", errors.New(errors.PhaseRender, errors.KindUnsupported).
			Path(d.Name).
			Line(d.Line).
			Detail("symbol name is a Go keyword and cannot be preserved").
			Build()
	}

	ret, err := e.crossing(d.Ret, []string{d.Name})
	if err != nil {
		return "", err
	}

	names := make([]string, len(d.Params))
	convs := make([]conv, len(d.Params))
	taken := make(map[string]bool, len(d.Params))
	for i, p := range d.Params {
		name := p.Name
		if name == "" || goKeywords[name] || taken[name] {
			name = fmt.Sprintf("arg%d", i)
		}
		taken[name] = true
		names[i] = name

		c, err := e.crossing(p.Type, []string{d.Name, p.Name})
		if err != nil {
			return "", err
		}
		if c.goType == "" {
			return "", e.unsupported(p.Type, []string{d.Name, p.Name}, "void parameter")
		}
		convs[i] = c
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// %s calls the foreign function of the same name.\n", d.Name)
	fmt.Fprintf(&b, "func %s(", d.Name)
	for i, c := range convs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s %s", names[i], c.goType)
	}
	b.WriteString(")")
	if ret.goType != "" {
		b.WriteString(" " + ret.goType)
	}
	b.WriteString(" {\n")

	args := make([]string, len(convs))
	for i, c := range convs {
		tmp := fmt.Sprintf("c%d", i)
		if c.prelude != nil {
			for _, line := range c.prelude(tmp, names[i]) {
				b.WriteString("\t" + line + "\n")
			}
		}
		args[i] = c.arg(tmp, names[i])
	}

	call := fmt.Sprintf("C.%s(%s)", d.Name, strings.Join(args, ", "))
	if ret.goType == "" {
		b.WriteString("\t" + call + "\n")
	} else {
		fmt.Fprintf(&b, "\treturn %s\n", ret.fromC(call))
	}
	b.WriteString("}\n")
	return b.String(), nil
}
