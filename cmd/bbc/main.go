// Command bbc compiles a Boltzmann-sampler grammar into a Go source
// file. See the package-level flags below for spec §6's CLI surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/boltzmannbrain/bb"
	"github.com/boltzmannbrain/bb/config"
)

const version = "0.1.0"

// usage mirrors spec §6's flag table; printed on --help/-h/-? and on
// argument errors.
func usage() {
	fmt.Fprintf(os.Stderr, `bbc - Boltzmann sampler compiler

Usage: bbc [flags] <grammar-file>

Flags:
  -p, --precision float   singularity bisection precision (default 1e-6)
  -e, --eps float         fixed-point evaluation precision (default 1e-6)
  -s, --sing float        user-supplied singularity; skips bisection
  -m, --module string     emitted module's identifier (default "Main")
  -v, --version           print version and exit
  -h, -?, --help          print this message and exit

Output is written to stdout; the emitted package is named by --module.
`)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("bbc", flag.ContinueOnError)
	fs.Usage = usage

	var (
		precision  float64
		eps        float64
		sing       float64
		singSet    bool
		module     string
		showVer    bool
		showHelp   bool
		tunerCmd   string
		cachePath  string
		metricsKey string
	)

	cfg, err := config.LoadFile(".bbrc.toml")
	if err != nil {
		fmt.Fprintln(os.Stderr, "bbc:", err)
		return 1
	}

	fs.Float64Var(&precision, "precision", cfg.EpsRho, "singularity bisection precision")
	fs.Float64Var(&precision, "p", cfg.EpsRho, "singularity bisection precision (shorthand)")
	fs.Float64Var(&eps, "eps", cfg.EpsY, "fixed-point evaluation precision")
	fs.Float64Var(&eps, "e", cfg.EpsY, "fixed-point evaluation precision (shorthand)")
	fs.Float64Var(&sing, "sing", 0, "user-supplied singularity; skips bisection")
	fs.Float64Var(&sing, "s", 0, "user-supplied singularity (shorthand)")
	fs.StringVar(&module, "module", cfg.Module, "emitted module's identifier")
	fs.StringVar(&module, "m", cfg.Module, "emitted module's identifier (shorthand)")
	fs.BoolVar(&showVer, "version", false, "print version and exit")
	fs.BoolVar(&showVer, "v", false, "print version and exit (shorthand)")
	fs.BoolVar(&showHelp, "help", false, "print this message and exit")
	fs.BoolVar(&showHelp, "h", false, "print this message and exit (shorthand)")
	fs.BoolVar(&showHelp, "?", false, "print this message and exit (shorthand)")
	fs.StringVar(&tunerCmd, "tuner", cfg.TunerCommand, "external tuner solver command")
	fs.StringVar(&cachePath, "cache", cfg.CachePath, "boltdb compile-cache path")
	fs.StringVar(&metricsKey, "metrics-sink", cfg.MetricsSink, `metrics sink: "noop", "prometheus", or "datadog"`)

	if err := fs.Parse(args); err != nil {
		return 1
	}

	singFlagWasSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "sing" || f.Name == "s" {
			singFlagWasSet = true
		}
	})
	singSet = singFlagWasSet

	if showHelp {
		usage()
		return 0
	}
	if showVer {
		fmt.Println("bbc version", version)
		return 0
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "bbc: expected exactly one grammar file argument")
		usage()
		return 1
	}

	cfg.EpsRho = precision
	cfg.EpsY = eps
	cfg.Module = module
	cfg.TunerCommand = tunerCmd
	cfg.CachePath = cachePath
	cfg.MetricsSink = metricsKey
	if singSet {
		cfg.Rho0 = &sing
	}

	path := fs.Arg(0)
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		fmt.Fprintln(os.Stderr, "bbc:", err)
		return 1
	}
	defer f.Close()

	compiler := bb.New(cfg)
	defer compiler.Close()

	src, err := compiler.Compile(context.Background(), f)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bbc:", err)
		return 1
	}

	if _, err := os.Stdout.Write(src); err != nil {
		fmt.Fprintln(os.Stderr, "bbc:", err)
		return 1
	}
	return 0
}
