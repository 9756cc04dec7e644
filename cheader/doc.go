// Package cheader parses the C-compatible header emitted by a foreign
// toolchain's static-archive build mode.
//
// The supported grammar is the subset such toolchains actually emit:
// function prototypes, simple and pointer typedefs, struct-body typedefs,
// opaque struct forward declarations, and extern "C" guards. Preprocessor
// lines and comments are skipped.
//
//	decls, err := cheader.Parse(headerText)
//
// Parsing is deliberately strict: any construct without a host-language
// equivalent is a fatal error, never a silently omitted symbol.
package cheader
