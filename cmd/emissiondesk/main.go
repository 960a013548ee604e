// Command emissiondesk runs the emissions data service in process against the
// seeded dataset and prints dashboard views, exports reports, and dumps
// snapshots.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"emissiondesk/internal/config"
	"emissiondesk/internal/core"
	"emissiondesk/internal/infra/persistence/memory"
	"emissiondesk/internal/logging"
	"emissiondesk/internal/seed"
	"emissiondesk/internal/sim"
	"emissiondesk/pkg/domain"
)

var exitFunc = os.Exit

func main() {
	code := cli(os.Args[1:], os.Stdout, os.Stderr)
	exitFunc(code)
}

type command struct {
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"summary":       {"dashboard overview: countries, regions, companies, reports", runSummary},
	"companies":     {"company table with latest emissions and change", runCompanies},
	"regions":       {"per-region emissions", runRegions},
	"notifications": {"notification list and distribution", runNotifications},
	"export-report": {"render a report and store it in the blob store", runExportReport},
	"snapshot":      {"dump the dataset to sqlite or postgres", runSnapshot},
	"metrics":       {"exercise the service and print prometheus metrics", runMetrics},
}

// maxAttempts bounds retries of simulated transient failures.
const maxAttempts = 3

type app struct {
	cfg      config.Config
	store    *memory.Store
	svc      *core.Service
	logger   *logging.Logger
	registry *prometheus.Registry
	stdout   io.Writer
	stderr   io.Writer
}

func newApp(cfg config.Config, stdout, stderr io.Writer) (*app, error) {
	logger, err := logging.New(stderr, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	registry := prometheus.NewRegistry()
	recorder, err := core.NewPrometheusRecorder(registry)
	if err != nil {
		return nil, err
	}
	seedValue := cfg.Simulation.Seed
	if seedValue == 0 {
		seedValue = time.Now().UnixNano()
	}
	simulator := sim.NewRandomWith(seedValue, cfg.Simulation.MinLatency, cfg.Simulation.MaxLatency, cfg.Simulation.FailureRate)
	store := seed.NewStore()
	svc := core.NewService(store,
		core.WithLogger(logger),
		core.WithSimulator(simulator),
		core.WithMetricsRecorder(recorder),
	)
	return &app{cfg: cfg, store: store, svc: svc, logger: logger, registry: registry, stdout: stdout, stderr: stderr}, nil
}

func cli(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}
	name := args[0]
	if name == "help" || name == "-h" || name == "--help" {
		usage(stdout)
		return 0
	}
	cmd, ok := commands[name]
	if !ok {
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n", name)
		usage(stderr)
		return 2
	}
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	a, err := newApp(cfg, stdout, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "setup: %v\n", err)
		return 1
	}
	defer func() { _ = a.logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := cmd.run(ctx, a, args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		_, _ = fmt.Fprintf(stderr, "%s: %v\n", name, err)
		if kind := domain.KindOf(err); kind != domain.KindUnknown {
			_, _ = fmt.Fprintf(stderr, "error kind: %s\n", kind)
		}
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "usage: emissiondesk <command> [flags]")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		_, _ = fmt.Fprintf(w, "  %-14s %s\n", name, commands[name].summary)
	}
}

// retry repeats fn while it fails with a retryable error.
func retry[T any](ctx context.Context, a *app, op string, fn func(context.Context) (T, error)) (T, error) {
	var (
		out T
		err error
	)
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		out, err = fn(ctx)
		if err == nil || !domain.IsRetryable(err) || attempt == maxAttempts {
			return out, err
		}
		a.logger.Warn("retrying", "operation", op, "attempt", attempt, "error", err)
	}
	return out, err
}

func newFlagSet(a *app, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}
