package bridge

import (
	"context"

	"go.uber.org/zap"

	"github.com/ffikit/ffi-bridge/binding"
	"github.com/ffikit/ffi-bridge/cheader"
	"github.com/ffikit/ffi-bridge/pipeline"
	"github.com/ffikit/ffi-bridge/toolchain"
)

// Config describes one end-to-end bridge run.
type Config = pipeline.Config

// Result collects everything a completed run produced.
type Result = pipeline.Result

// DefaultConfig returns a config wired for the Go toolchain in c-archive mode.
func DefaultConfig() Config {
	return pipeline.DefaultConfig()
}

// Run compiles the foreign source, generates the cgo binding file and
// assembles the link directives for the host build system.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	return pipeline.Run(ctx, cfg)
}

// SetLogger configures logging for every bridge package at once.
// This must be called before any bridge operations.
func SetLogger(l *zap.Logger) {
	pipeline.SetLogger(l)
	toolchain.SetLogger(l)
	cheader.SetLogger(l)
	binding.SetLogger(l)
}
