package pipeline

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ffikit/ffi-bridge/errors"
)

// Config describes one end-to-end bridge run.
type Config struct {
	// Toolchain is the foreign compiler executable, looked up on PATH
	// when not absolute.
	Toolchain string `yaml:"toolchain"`

	// BuildArgs are passed to the toolchain before the output flag, for
	// example ["build", "-buildmode=c-archive"].
	BuildArgs []string `yaml:"build_args"`

	// Source is the foreign entry-point source path.
	Source string `yaml:"source"`

	// OutDir is the scratch directory the run owns. Artifacts and the
	// binding file land here unless BindingFile overrides it.
	OutDir string `yaml:"out_dir"`

	// LibName is the archive base name: "go" yields libgo.a and libgo.h.
	LibName string `yaml:"lib_name"`

	// Package is the package clause of the generated binding file.
	Package string `yaml:"package"`

	// BindingFile is the generated source path. Defaults to
	// <OutDir>/<LibName>_bindings.go.
	BindingFile string `yaml:"binding_file"`

	// TargetOS selects the platform link table. Defaults to the host OS.
	TargetOS string `yaml:"target_os"`

	// Env holds extra KEY=VAL entries for the toolchain environment.
	Env []string `yaml:"env"`
}

// DefaultConfig returns a config wired for the Go toolchain in c-archive
// mode, the common case this bridge was built for.
func DefaultConfig() Config {
	return Config{
		Toolchain: "go",
		BuildArgs: []string{"build", "-buildmode=c-archive"},
		LibName:   "go",
		Package:   "bindings",
		TargetOS:  runtime.GOOS,
	}
}

// LoadConfig reads a YAML config file and fills defaults for omitted
// fields. Validation is left to Run so programmatic configs get the same
// checks.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidConfig, err,
			"cannot read config file "+path)
	}

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidConfig, err,
			"cannot parse config file "+path)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Toolchain == "" {
		return errors.InvalidConfig("toolchain executable is required")
	}
	if c.Source == "" {
		return errors.InvalidConfig("source path is required")
	}
	if c.OutDir == "" {
		return errors.InvalidConfig("output directory is required")
	}
	if c.LibName == "" {
		return errors.InvalidConfig("library name is required")
	}
	if c.Package == "" {
		return errors.InvalidConfig("binding package name is required")
	}
	if c.TargetOS == "" {
		c.TargetOS = runtime.GOOS
	}
	if c.BindingFile == "" {
		c.BindingFile = filepath.Join(c.OutDir, c.LibName+"_bindings.go")
	}
	return nil
}
