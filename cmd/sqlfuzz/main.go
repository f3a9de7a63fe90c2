// Package main implements the sqlfuzz CLI.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/electwix/sqlfuzz/internal/cli"
	"github.com/electwix/sqlfuzz/internal/config"
	"github.com/electwix/sqlfuzz/internal/fuzzer"
	"github.com/electwix/sqlfuzz/internal/harness"
	"github.com/electwix/sqlfuzz/internal/logging"
	"github.com/electwix/sqlfuzz/internal/mutate"
)

func main() {
	code := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := cli.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			_, _ = fmt.Fprintln(stdout, err.Error())
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err.Error())
		return 1
	}

	logger := logging.NewSlogAdapter(logging.New(logging.Options{
		Verbose: opts.Verbose,
		Writer:  stderr,
	}))

	res, err := config.Load(opts.ConfigPath, config.LoadOptions{Strict: opts.StrictConfig})
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err.Error())
		return 1
	}
	for _, warning := range res.Warnings {
		logger.Warn(warning)
	}
	plan := res.Plan

	iterations := plan.Iterations
	if opts.Iterations >= 0 {
		iterations = opts.Iterations
	}
	execute := plan.Execute || opts.Execute || opts.Report != ""
	reportPath := plan.Report
	if opts.Report != "" {
		reportPath = opts.Report
	}

	rng, seed := newRand(opts, plan)
	logger.Debug("random source initialized", "seed", seed)

	engine, err := fuzzer.New(plan.Seeds,
		fuzzer.WithMutationRange(plan.MinMutations, plan.MaxMutations),
		fuzzer.WithRegistry(registryFor(plan.Registry)),
		fuzzer.WithRand(rng),
		fuzzer.WithLogger(logger),
	)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err.Error())
		return 1
	}

	if !execute {
		for i := 0; i < iterations; i++ {
			_, _ = fmt.Fprintf(stdout, "-- candidate %d\n%s\n", i+1, engine.Next())
		}
		return 0
	}

	runner, err := harness.NewRunner(engine, logger)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err.Error())
		return 1
	}
	defer func() { _ = runner.Close() }()

	report, runErr := runner.Run(ctx, iterations)
	printSummary(stdout, report)
	if runErr != nil {
		_, _ = fmt.Fprintln(stderr, runErr.Error())
		return 1
	}

	if reportPath != "" {
		if err := writeReport(reportPath, report); err != nil {
			_, _ = fmt.Fprintln(stderr, err.Error())
			return 2
		}
		logger.Info("report written", "path", reportPath)
	}
	return 0
}

func newRand(opts cli.Options, plan config.Plan) (*rand.Rand, int64) {
	seed := time.Now().UnixNano()
	switch {
	case opts.RandSeedSet:
		seed = opts.RandSeed
	case plan.RandSeed != nil:
		seed = *plan.RandSeed
	}
	return rand.New(rand.NewSource(seed)), seed
}

func registryFor(mode config.RegistryMode) mutate.Registry {
	switch mode {
	case config.RegistrySQL:
		return mutate.SQLAware()
	case config.RegistryCombined:
		return mutate.Combined()
	default:
		return mutate.Generic()
	}
}

func printSummary(w io.Writer, report *harness.Report) {
	_, _ = fmt.Fprintf(w, "run %s: executed %d candidates\n", report.ID, report.Executed)
	for _, outcome := range []harness.Outcome{harness.OutcomeOK, harness.OutcomeError, harness.OutcomePanic} {
		if n := report.Outcomes[outcome]; n > 0 {
			_, _ = fmt.Fprintf(w, "  %-5s %d\n", outcome, n)
		}
	}
	_, _ = fmt.Fprintf(w, "  promoted %d candidates into the population\n", len(report.Promoted))
}

func writeReport(path string, report *harness.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := report.WriteYAML(f); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
