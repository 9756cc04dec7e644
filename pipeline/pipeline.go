package pipeline

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ffikit/ffi-bridge/binding"
	"github.com/ffikit/ffi-bridge/cheader"
	"github.com/ffikit/ffi-bridge/directive"
	"github.com/ffikit/ffi-bridge/toolchain"
)

// Result collects everything a completed run produced.
type Result struct {
	RunID       string
	Archive     string
	Header      string
	BindingFile string
	Decls       []cheader.Decl
	Directives  *directive.Set
}

// Run executes the three bridge stages in order: compile the foreign
// source into an archive, generate bindings from the emitted header, and
// assemble the link directives. Any stage error aborts the run; a failed
// run never leaves a binding file behind.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := Logger().With(zap.String("run_id", runID))
	log.Info("starting bridge run",
		zap.String("toolchain", cfg.Toolchain),
		zap.String("source", cfg.Source),
		zap.String("out_dir", cfg.OutDir))

	arts, err := toolchain.Compile(ctx, toolchain.Invocation{
		Executable: cfg.Toolchain,
		BuildArgs:  cfg.BuildArgs,
		Source:     cfg.Source,
		OutDir:     cfg.OutDir,
		LibName:    cfg.LibName,
		Env:        cfg.Env,
	})
	if err != nil {
		return nil, err
	}
	log.Debug("foreign archive built",
		zap.String("archive", arts.Archive),
		zap.String("header", arts.Header))

	decls, err := cheader.ParseFile(arts.Header)
	if err != nil {
		return nil, err
	}

	src, err := binding.Render(decls, binding.Options{
		Package: cfg.Package,
		Header:  filepath.Base(arts.Header),
		LibName: cfg.LibName,
	})
	if err != nil {
		return nil, err
	}
	if err := binding.WriteFile(cfg.BindingFile, src); err != nil {
		return nil, err
	}
	log.Debug("binding file written",
		zap.String("path", cfg.BindingFile),
		zap.Int("decls", len(decls)))

	dirs := assembleDirectives(cfg)

	log.Info("bridge run complete",
		zap.Int("decls", len(decls)),
		zap.Int("directives", len(dirs.Directives())))

	return &Result{
		RunID:       runID,
		Archive:     arts.Archive,
		Header:      arts.Header,
		BindingFile: cfg.BindingFile,
		Decls:       decls,
		Directives:  dirs,
	}, nil
}

// assembleDirectives builds the link instructions for a finished compile.
// The archive is linked statically; system dependencies come from the
// target platform table, not from the header contents.
func assembleDirectives(cfg Config) *directive.Set {
	var s directive.Set
	s.RerunIfChanged(cfg.Source)
	s.RerunIfChanged(cfg.OutDir)
	s.LinkSearch(cfg.OutDir)
	s.LinkStatic(cfg.LibName)

	frameworks, libs := directive.SystemDeps(cfg.TargetOS)
	for _, fw := range frameworks {
		s.LinkFramework(fw)
	}
	for _, lib := range libs {
		s.LinkSystemLib(lib)
	}
	return &s
}
