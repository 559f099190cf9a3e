package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/swordfeng/ireina/pkg/config"
	"github.com/swordfeng/ireina/pkg/httpclient"
	"github.com/swordfeng/ireina/pkg/logging"
	"github.com/swordfeng/ireina/pkg/metrics"
	"github.com/swordfeng/ireina/pkg/monitor"
	"github.com/swordfeng/ireina/pkg/ticker"
	"github.com/swordfeng/ireina/pkg/version"
)

var (
	configFile = flag.String("config", "config/config.yaml", "Path to configuration file")
	showVer    = flag.Bool("version", false, "Show version and exit")
)

type instrument struct {
	symbol string
	source ticker.Source
}

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("ireina version %s\n", version.Version)
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logging
	logger, err := logging.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)

	logger.Info("Starting ireina", "version", version.Version, "instruments", len(cfg.Instruments))

	// Initialize metrics
	metrics.Init()
	if cfg.Metrics.Enabled {
		go func() {
			logger.Info("Starting metrics server", "addr", cfg.Metrics.Addr)
			if err := metrics.ServeHTTP(cfg.Metrics.Addr, cfg.Metrics.Path); err != nil {
				logger.Error("Metrics server failed", "error", err)
			}
		}()
	}

	// One HTTP client for the whole process: shared connection pool,
	// single timeout policy.
	client := httpclient.New(cfg.HTTP.Timeout.ToDuration(), cfg.HTTP.UserAgent)
	deps := ticker.Deps{
		Client: client,
		Logger: logger,
		TTL:    cfg.Cache.TTL.ToDuration(),
	}

	instruments := make([]instrument, 0, len(cfg.Instruments))
	for _, ic := range cfg.Instruments {
		members := make([]ticker.Source, 0, len(ic.Sources))
		for _, sc := range ic.Sources {
			src, err := ticker.Create(deps, sc)
			if err != nil {
				logger.Fatal("Failed to build source", "instrument", ic.Symbol, "error", err)
			}
			members = append(members, src)
		}
		instruments = append(instruments, instrument{
			symbol: ic.Symbol,
			source: ticker.NewAggregator(ic.Symbol, members, logger),
		})
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var mon *monitor.Monitor
	if cfg.Monitor.Enabled {
		mon = monitor.New(client, logger, monitor.Config{
			APIURL:       cfg.Monitor.APIURL,
			PollInterval: cfg.Monitor.PollInterval.ToDuration(),
			Retention:    cfg.Monitor.Retention.ToDuration(),
		})
		go mon.Run(ctx)
	}

	go reportLoop(ctx, logger, instruments, mon, cfg.Report.Interval.ToDuration())

	sig := <-sigChan
	logger.Info("Received shutdown signal", "signal", sig.String())
	cancel()
	logger.Info("Shutdown complete")
}

// reportLoop periodically fetches every instrument's consensus price and
// logs it, along with any new catalog change the monitor has picked up.
func reportLoop(ctx context.Context, logger *logging.Logger, instruments []instrument, mon *monitor.Monitor, interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()

	var lastDiff string
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
		}

		for _, inst := range instruments {
			sample := inst.source.Fetch(ctx)
			fields := []interface{}{
				"instrument", inst.symbol,
				"insufficient_data", sample.InsufficientData,
			}
			if sample.LastPrice != nil {
				fields = append(fields, "last", sample.LastPrice.String())
			}
			if sample.PrevPrice != nil {
				fields = append(fields, "prev", sample.PrevPrice.String())
			}
			if len(sample.Errors) > 0 {
				fields = append(fields, "errors", sample.Errors)
			}
			logger.Info("Consensus price", fields...)
		}

		if mon != nil {
			if diff, ok := mon.Diff(); ok && diff != lastDiff {
				logger.Info("Catalog changed", "diff", diff)
				lastDiff = diff
			}
		}
	}
}
