// Package errors provides structured error types for the ffi-bridge pipeline.
//
// Errors are categorized by Phase (which pipeline stage failed) and Kind (error
// category). The Error type includes rich context: declaration path, C/Go type
// names, header line numbers, captured toolchain diagnostics, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseParse, errors.KindUnsupported).
//		Path("Add", "b").
//		CType("...").
//		Detail("variadic functions cannot be bound").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ToolchainMissing("go", cause)
//	err := errors.CompileFailed("go", cause, stderrOutput)
//
// All errors implement the standard error interface and support errors.Is/As.
// Every Kind in this package is fatal: the pipeline has no retry or degraded
// mode, because each failure reflects a build configuration a human must fix.
package errors
