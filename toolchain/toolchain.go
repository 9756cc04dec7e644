package toolchain

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ffikit/ffi-bridge/errors"
)

// Invocation describes one foreign toolchain run. All fields are explicit;
// nothing is read from ambient process state except the inherited environment.
type Invocation struct {
	Executable string   // toolchain binary, looked up on PATH if not absolute
	BuildArgs  []string // subcommand and build-mode flag, e.g. ["build", "-buildmode=c-archive"]
	Source     string   // foreign entry-point source path
	OutDir     string   // scratch directory owned by this run
	LibName    string   // archive base name: "go" yields libgo.a and libgo.h
	Env        []string // extra KEY=VAL entries appended to the environment
}

// Artifacts are the deterministic output paths of a successful invocation.
// The header is produced by the toolchain alongside the archive.
type Artifacts struct {
	Archive string
	Header  string
}

// ArchivePath returns where the static archive will be written.
func (inv Invocation) ArchivePath() string {
	return filepath.Join(inv.OutDir, "lib"+inv.LibName+".a")
}

// HeaderPath returns where the toolchain writes the C-compatible header,
// derived from the archive path by the toolchain's own naming rule.
func (inv Invocation) HeaderPath() string {
	return filepath.Join(inv.OutDir, "lib"+inv.LibName+".h")
}

// Compile invokes the foreign toolchain in static-archive mode and blocks
// until it exits. Success is determined solely by the exit status.
//
// A missing executable is reported as KindToolchainMissing; a non-zero exit
// as KindCompileFailed carrying the toolchain's combined output verbatim.
// Neither is retried: both reflect build configuration a human must fix.
func Compile(ctx context.Context, inv Invocation) (Artifacts, error) {
	archive := inv.ArchivePath()
	args := make([]string, 0, len(inv.BuildArgs)+3)
	args = append(args, inv.BuildArgs...)
	args = append(args, "-o", archive, inv.Source)

	cmd := exec.CommandContext(ctx, inv.Executable, args...)
	if len(inv.Env) > 0 {
		cmd.Env = append(os.Environ(), inv.Env...)
	}
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	Logger().Debug("invoking foreign toolchain",
		zap.String("executable", inv.Executable),
		zap.Strings("args", args),
	)

	if err := cmd.Run(); err != nil {
		if stderrors.Is(err, exec.ErrNotFound) {
			return Artifacts{}, errors.ToolchainMissing(inv.Executable, err)
		}
		return Artifacts{}, errors.CompileFailed(inv.Executable, err, out.String())
	}

	arts := Artifacts{Archive: archive, Header: inv.HeaderPath()}
	Logger().Debug("foreign toolchain succeeded",
		zap.String("archive", arts.Archive),
		zap.String("header", arts.Header),
	)
	return arts, nil
}
