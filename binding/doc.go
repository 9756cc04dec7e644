// Package binding synthesizes cgo declarations from a parsed C header.
//
// Render turns the header's declarations into one Go source file: a type
// alias per typedef, a typed handle per opaque struct, and a wrapper
// function per prototype, calling through cgo with the exact exported
// symbol names. The file is regenerated wholesale on every run; removed
// header symbols simply disappear.
//
//	src, err := binding.Render(decls, binding.Options{
//		Package: "libfoo",
//		Header:  "libfoo.h",
//		LibName: "foo",
//	})
//
// Render and Parse are separate pure functions so the generator is testable
// without invoking any real foreign toolchain.
package binding
