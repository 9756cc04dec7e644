// Package pipeline drives a complete bridge run.
//
// A run has three strictly ordered stages. First the foreign toolchain
// compiles the entry-point source into a static archive plus a generated
// C header. Second the header is parsed and rendered into a cgo binding
// file. Third the link directives for the host build system are
// assembled from the run's paths and the target platform table.
//
//	res, err := pipeline.Run(ctx, pipeline.Config{
//		Toolchain: "go",
//		BuildArgs: []string{"build", "-buildmode=c-archive"},
//		Source:    "./foreign/mod.go",
//		OutDir:    outDir,
//		LibName:   "go",
//		Package:   "bindings",
//	})
//
// Stages never overlap and the run fails fast: a compile or parse error
// means no binding file is written and no directives are produced.
package pipeline
