package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// Options captures the parsed command line.
type Options struct {
	ConfigPath   string
	Iterations   int
	RandSeed     int64
	RandSeedSet  bool
	Execute      bool
	Report       string
	StrictConfig bool
	Verbose      bool
	Args         []string
}

// Parse reads the sqlfuzz command line. Flags override the corresponding
// configuration file settings.
func Parse(args []string) (Options, error) {
	const defaultConfig = "sqlfuzz.toml"

	opts := Options{
		ConfigPath: defaultConfig,
		Iterations: -1,
	}

	fs := flag.NewFlagSet("sqlfuzz", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "Path to configuration file")
	fs.StringVar(&opts.ConfigPath, "c", opts.ConfigPath, "Path to configuration file")
	fs.IntVar(&opts.Iterations, "iterations", -1, "Override the number of candidates to produce")
	fs.Int64Var(&opts.RandSeed, "rand-seed", 0, "Seed the random source for a reproducible run")
	fs.BoolVar(&opts.Execute, "execute", false, "Execute candidates against an in-memory SQLite database")
	fs.StringVar(&opts.Report, "report", "", "Write a YAML run report to this path (implies -execute)")
	fs.BoolVar(&opts.StrictConfig, "strict-config", false, "Treat configuration warnings as errors")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&opts.Verbose, "v", false, "Enable verbose logging")

	if err := fs.Parse(args); err != nil {
		return Options{}, fmt.Errorf("%w\n\n%s", err, Usage(fs))
	}

	seen := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { seen[f.Name] = true })
	opts.RandSeedSet = seen["rand-seed"]

	opts.Args = fs.Args()
	return opts, nil
}

// Usage renders the flag set's defaults into a string.
func Usage(fs *flag.FlagSet) string {
	if fs == nil {
		return ""
	}
	var buf strings.Builder
	fmt.Fprintf(&buf, "Usage of %s:\n", fs.Name())
	out := fs.Output()
	fs.SetOutput(&buf)
	fs.PrintDefaults()
	fs.SetOutput(out)
	return buf.String()
}
