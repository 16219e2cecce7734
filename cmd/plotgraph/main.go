package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dd0wney/cluso-plotgraph/pkg/analysis"
	"github.com/dd0wney/cluso-plotgraph/pkg/config"
	"github.com/dd0wney/cluso-plotgraph/pkg/logging"
	"github.com/dd0wney/cluso-plotgraph/pkg/metrics"
)

type options struct {
	configFile  string
	tolerance   int
	workers     int
	logLevel    string
	keepMotive  bool
	anchored    bool
	metricsFile string
	jsonOutput  bool
}

// newFlagSet binds the command line flags to opts.
func newFlagSet(name string, opts *options) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.StringVar(&opts.configFile, "config", "", "YAML configuration file")
	fs.IntVar(&opts.tolerance, "tolerance", config.DefaultTolerance, "Template edges a composite unit match may miss")
	fs.IntVar(&opts.workers, "workers", 0, "Concurrent searches and traces (default GOMAXPROCS)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.BoolVar(&opts.keepMotive, "keep-unmatched-motivation", false, "Keep the motivation annotation on an intention label when none of its motivating expressions matched an event")
	fs.BoolVar(&opts.anchored, "require-anchored", false, "Reject composite matches with a vertex that touches no matched template edge")
	fs.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile")
	fs.BoolVar(&opts.jsonOutput, "json", false, "Print results as JSON")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] trace.yaml...\n\n", name)
		fs.PrintDefaults()
	}
	return fs
}

func main() {
	var opts options
	fs := newFlagSet(os.Args[0], &opts)
	_ = fs.Parse(os.Args[1:])

	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

	cfg, err := loadConfig(fs, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("config: "+err.Error()))
		os.Exit(2)
	}

	logger := logging.NewJSONLogger(os.Stderr, cfg.Level())
	logging.SetDefaultLogger(logger)

	reg := metrics.NewRegistry()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := analysis.New(cfg, logger, reg).AnalyzeFiles(ctx, fs.Args())
	if cfg.MetricsFile != "" {
		if werr := reg.WriteTextfile(cfg.MetricsFile); werr != nil {
			logger.Error("failed to write metrics", logging.Path(cfg.MetricsFile), logging.Error(werr))
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}

	if opts.jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
			os.Exit(1)
		}
		return
	}
	for _, r := range results {
		fmt.Println(renderReport(r))
	}
}

// loadConfig reads the config file, if any, and applies flags that were set
// explicitly on top of it.
func loadConfig(fs *flag.FlagSet, opts options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configFile != "" {
		var err error
		if cfg, err = config.Load(opts.configFile); err != nil {
			return nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tolerance":
			cfg.SetTolerance(opts.tolerance)
		case "workers":
			cfg.Workers = opts.workers
		case "log-level":
			cfg.LogLevel = opts.logLevel
		case "keep-unmatched-motivation":
			cfg.KeepUnmatchedMotivation = opts.keepMotive
		case "require-anchored":
			cfg.RequireAnchored = opts.anchored
		case "metrics-file":
			cfg.MetricsFile = opts.metricsFile
		}
	})
	cfg.ApplyDefaults()
	return cfg, cfg.Validate()
}
