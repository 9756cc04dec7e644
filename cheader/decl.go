package cheader

import "strings"

// DeclKind discriminates the header constructs the bridge understands.
type DeclKind int

const (
	DeclTypedef DeclKind = iota // typedef of a primitive or pointer type
	DeclRecord                  // typedef of an inline struct body
	DeclOpaque                  // struct forward declaration
	DeclFunc                    // function prototype
)

func (k DeclKind) String() string {
	switch k {
	case DeclTypedef:
		return "typedef"
	case DeclRecord:
		return "record"
	case DeclOpaque:
		return "opaque"
	case DeclFunc:
		return "function"
	}
	return "unknown"
}

// Type is a C type reference as written in the header.
type Type struct {
	Base  string // base type words joined by a space: "unsigned long long", "GoInt", "void"
	Stars int    // pointer depth
	Const bool
}

// IsVoid reports whether the type is plain void (no pointer).
func (t Type) IsVoid() bool {
	return t.Base == "void" && t.Stars == 0
}

// String renders the type in C syntax.
func (t Type) String() string {
	var b strings.Builder
	if t.Const {
		b.WriteString("const ")
	}
	b.WriteString(t.Base)
	b.WriteString(strings.Repeat("*", t.Stars))
	return b.String()
}

// Field is a named, typed slot: a function parameter or a record member.
type Field struct {
	Name string
	Type Type
}

// Decl is one exported header construct, in source order.
type Decl struct {
	Kind   DeclKind
	Name   string
	Alias  Type    // underlying type for DeclTypedef
	Fields []Field // members for DeclRecord
	Ret    Type    // return type for DeclFunc
	Params []Field // parameters for DeclFunc
	Line   int
}
