// Package toolchain shells out to the foreign compiler.
//
// The foreign toolchain is treated as an opaque executable that accepts a
// build-mode flag and produces two artifacts at deterministic paths inside
// the output directory: a statically linkable archive and a C-compatible
// header describing its exported surface.
//
//	arts, err := toolchain.Compile(ctx, toolchain.Invocation{
//		Executable: "go",
//		BuildArgs:  []string{"build", "-buildmode=c-archive"},
//		Source:     "./foreign/mod.go",
//		OutDir:     outDir,
//		LibName:    "go",
//	})
//
// The invocation is synchronous and run-to-completion; cancellation comes
// from the caller's context. There are no retries: a failing invocation is a
// deterministic compile error, not a transient fault.
package toolchain
