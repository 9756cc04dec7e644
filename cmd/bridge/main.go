package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	bridge "github.com/ffikit/ffi-bridge"
	"github.com/ffikit/ffi-bridge/pipeline"
)

func main() {
	var (
		configFile  = flag.String("config", "", "Path to YAML config file")
		source      = flag.String("src", "", "Foreign entry-point source path")
		outDir      = flag.String("out", "", "Output directory for artifacts")
		libName     = flag.String("name", "", "Archive base name (default \"go\")")
		pkgName     = flag.String("pkg", "", "Package clause of the generated bindings")
		targetOS    = flag.String("target", "", "Target OS for link directives (default host)")
		envStr      = flag.String("env", "", "Toolchain environment (KEY=VAL,KEY2=VAL2)")
		verbose     = flag.Bool("v", false, "Verbose logging to stderr")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *configFile == "" && *source == "" {
		fmt.Fprintln(os.Stderr, "Usage: bridge -src <mod.go> -out <dir> [-name go] [-pkg bindings]")
		fmt.Fprintln(os.Stderr, "       bridge -config <bridge.yaml>")
		fmt.Fprintln(os.Stderr, "       bridge -src <mod.go> -out <dir> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		// Logs go to stderr so stdout stays a clean directive stream.
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()
		bridge.SetLogger(log)
	}

	cfg, err := buildConfig(*configFile, *source, *outDir, *libName, *pkgName, *targetOS, *envStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildConfig(configFile, source, outDir, libName, pkgName, targetOS, envStr string) (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()
	if configFile != "" {
		loaded, err := pipeline.LoadConfig(configFile)
		if err != nil {
			return pipeline.Config{}, err
		}
		cfg = loaded
	}

	// Flags override the config file.
	if source != "" {
		cfg.Source = source
	}
	if outDir != "" {
		cfg.OutDir = outDir
	}
	if libName != "" {
		cfg.LibName = libName
	}
	if pkgName != "" {
		cfg.Package = pkgName
	}
	if targetOS != "" {
		cfg.TargetOS = targetOS
	}
	if envStr != "" {
		for _, kv := range strings.Split(envStr, ",") {
			if strings.Contains(kv, "=") {
				cfg.Env = append(cfg.Env, kv)
			}
		}
	}
	return cfg, nil
}

func run(cfg pipeline.Config) error {
	res, err := pipeline.Run(context.Background(), cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Archive:  %s\n", res.Archive)
	fmt.Fprintf(os.Stderr, "Header:   %s\n", res.Header)
	fmt.Fprintf(os.Stderr, "Bindings: %s (%d declarations)\n", res.BindingFile, len(res.Decls))

	// Directives are the machine-readable output and own stdout.
	return res.Directives.Emit(os.Stdout)
}
