// Package bridge generates cgo bindings for foreign static archives at
// build time.
//
// A bridge run invokes a foreign toolchain in c-archive mode, parses the
// C header the toolchain emits alongside the archive, renders a cgo
// binding file for the exported functions, and prints line-oriented link
// directives for the host build system.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	bridge/              Root package with the Run entry point and logging setup
//	├── pipeline/        End-to-end run orchestration and YAML configuration
//	├── toolchain/       Foreign compiler invocation and artifact paths
//	├── cheader/         Generated C header parsing into declarations
//	├── binding/         cgo binding source generation from declarations
//	├── directive/       Build-system link directives and the platform table
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Run the whole pipeline:
//
//	res, err := bridge.Run(ctx, bridge.Config{
//	    Toolchain: "go",
//	    BuildArgs: []string{"build", "-buildmode=c-archive"},
//	    Source:    "./foreign/mod.go",
//	    OutDir:    outDir,
//	    LibName:   "go",
//	    Package:   "bindings",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res.Directives.Emit(os.Stdout)
//
// # Failure Model
//
// The pipeline fails fast. A missing toolchain, a compile error, and an
// exported signature the host language cannot represent are all distinct
// structured errors, and none of them leaves a partial binding file
// behind. Directives are only produced for a fully successful run.
//
// # Supported Declarations
//
// The header parser accepts the subset a c-archive toolchain emits:
//
//   - Primitives: char through long long, unsigned variants, float,
//     double, _Bool, size_t and the stdint fixed-width types
//   - Typedef chains resolving to primitives, records or pointers
//   - Opaque struct handles passed by pointer
//   - Strings as char* with copy semantics at the boundary
//
// Variadic functions, function pointers, arrays, unions and enums are
// rejected with an error naming the offending declaration.
package bridge
