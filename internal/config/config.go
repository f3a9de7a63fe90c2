// Package config loads and validates the sqlfuzz configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/electwix/sqlfuzz/internal/corpus"
	"github.com/electwix/sqlfuzz/internal/fuzzer"
)

// RegistryMode selects which operator registry the engine runs with.
type RegistryMode string

const (
	// RegistryGeneric draws from the character-level operators only.
	RegistryGeneric RegistryMode = "generic"
	// RegistrySQL draws from the SQL token-level operators only.
	RegistrySQL RegistryMode = "sql"
	// RegistryCombined draws from both.
	RegistryCombined RegistryMode = "combined"
)

var validRegistries = map[RegistryMode]struct{}{
	RegistryGeneric:  {},
	RegistrySQL:      {},
	RegistryCombined: {},
}

// DefaultIterations is the number of candidates produced when the config
// does not say otherwise.
const DefaultIterations = 100

// Config mirrors the expected sqlfuzz TOML schema.
type Config struct {
	Seeds        []string     `toml:"seeds"`
	MinMutations *int         `toml:"min_mutations"`
	MaxMutations *int         `toml:"max_mutations"`
	Registry     RegistryMode `toml:"registry"`
	Iterations   int          `toml:"iterations"`
	RandSeed     *int64       `toml:"rand_seed"`
	Execute      bool         `toml:"execute"`
	Report       string       `toml:"report"`
}

// Plan is the fully-resolved configuration used by the command.
type Plan struct {
	SeedPatterns []string
	SeedPaths    []string
	// Seeds holds the loaded seed contents, one per matched file, in
	// SeedPaths order.
	Seeds        []string
	MinMutations int
	MaxMutations int
	Registry     RegistryMode
	Iterations   int
	// RandSeed is nil when no seed was configured; the engine then
	// self-seeds from the clock.
	RandSeed *int64
	Execute  bool
	// Report is the YAML report destination, relative paths resolved
	// against the config directory. Empty disables the report.
	Report string
}

// LoadOptions tunes config loading behavior.
type LoadOptions struct {
	Strict bool
	// Loader overrides the seed file loader; defaults to the host
	// filesystem rooted at the config directory.
	Loader *corpus.Loader
}

// Result wraps a loaded plan alongside any non-fatal warnings.
type Result struct {
	Plan     Plan
	Warnings []string
}

// Load reads, validates, and resolves a sqlfuzz configuration file.
func Load(path string, opts LoadOptions) (Result, error) {
	var res Result

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return res, fmt.Errorf("read %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}

	unknownKeys, err := collectUnknownKeys(data)
	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}
	if len(unknownKeys) > 0 {
		slices.Sort(unknownKeys)
		message := fmt.Sprintf("%s: unknown configuration keys: %s", path, strings.Join(unknownKeys, ", "))
		if opts.Strict {
			return res, errors.New(message)
		}
		res.Warnings = append(res.Warnings, message)
	}

	minMut := fuzzer.DefaultMinMutations
	if cfg.MinMutations != nil {
		minMut = *cfg.MinMutations
	}
	maxMut := fuzzer.DefaultMaxMutations
	if cfg.MaxMutations != nil {
		maxMut = *cfg.MaxMutations
	}
	if minMut < 0 {
		return res, fmt.Errorf("%s: min_mutations must not be negative", path)
	}
	if maxMut < minMut {
		return res, fmt.Errorf("%s: max_mutations must be >= min_mutations", path)
	}

	registry := cfg.Registry
	if registry == "" {
		registry = RegistryGeneric
	}
	if _, ok := validRegistries[registry]; !ok {
		return res, fmt.Errorf("%s: unsupported registry %q", path, registry)
	}

	iterations := cfg.Iterations
	if iterations == 0 {
		iterations = DefaultIterations
	}
	if iterations < 0 {
		return res, fmt.Errorf("%s: iterations must not be negative", path)
	}

	baseDir := filepath.Dir(path)

	var loader corpus.Loader
	if opts.Loader != nil {
		loader = *opts.Loader
	} else {
		loader, err = corpus.NewOSLoader(baseDir)
		if err != nil {
			return res, fmt.Errorf("%s: %w", path, err)
		}
	}

	paths, err := loader.Resolve(cfg.Seeds)
	if err != nil {
		switch {
		case errors.Is(err, corpus.ErrNoPatterns):
			return res, fmt.Errorf("%s: seeds must include at least one pattern", path)
		default:
			return res, fmt.Errorf("%s: %w", path, err)
		}
	}

	seeds, err := loader.Read(paths)
	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}

	report := cfg.Report
	if report != "" && !filepath.IsAbs(report) {
		report = filepath.Join(baseDir, report)
	}

	res.Plan = Plan{
		SeedPatterns: cfg.Seeds,
		SeedPaths:    paths,
		Seeds:        seeds,
		MinMutations: minMut,
		MaxMutations: maxMut,
		Registry:     registry,
		Iterations:   iterations,
		RandSeed:     cfg.RandSeed,
		Execute:      cfg.Execute,
		Report:       report,
	}
	return res, nil
}

func collectUnknownKeys(data []byte) ([]string, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	known := map[string]struct{}{
		"seeds":         {},
		"min_mutations": {},
		"max_mutations": {},
		"registry":      {},
		"iterations":    {},
		"rand_seed":     {},
		"execute":       {},
		"report":        {},
	}

	unknown := make([]string, 0)
	for key := range raw {
		if _, ok := known[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	return unknown, nil
}
