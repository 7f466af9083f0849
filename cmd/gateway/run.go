package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"vendorlink/gateway/pkg/config"
	"vendorlink/gateway/pkg/server"
	"vendorlink/gateway/pkg/session"
	"vendorlink/gateway/pkg/telemetry/logging"
	"vendorlink/gateway/pkg/telemetry/metrics"
	"vendorlink/gateway/pkg/upstream"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
	watchConfig   bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the gateway server",
	Long: `Start the gateway server with the specified configuration.

The server listens on the configured address and forwards client requests to
the general backend and the AI backend.

Examples:
  # Start with default config
  gateway run

  # Start with custom config
  gateway run --config /etc/vendorlink/gateway.yaml

  # Override listen address
  gateway run --listen 0.0.0.0:8080

  # Validate config without starting the server
  gateway run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
	runCmd.Flags().BoolVar(&runFlags.watchConfig, "watch-config", true, "reload upstream targets when the config file changes")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}

	logger, err := logging.New(cfg.Telemetry.Logging, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	slog.SetDefault(logger)

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Session store, resolver, and pruner.
	storeCfg := session.DefaultSQLiteConfig()
	storeCfg.Path = cfg.Session.StorePath
	store, err := session.NewSQLiteStore(storeCfg)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer store.Close()

	resolver := session.NewResolver(store)

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics)

	pruner := session.NewPruner(store, cfg.Session.PruneSchedule)
	pruner.OnPruned = collector.RecordSessionsPruned
	if err := pruner.Start(ctx); err != nil {
		return fmt.Errorf("failed to start session pruner: %w", err)
	}
	defer pruner.Stop()

	// Upstream router.
	router := upstream.NewRouter(targetsFromConfig(cfg), cfg.Upstreams.Timeout)
	defer router.Close()

	// Hot-reload upstream targets on config file changes.
	if runFlags.watchConfig {
		watcher, err := config.NewWatcher(cfgFile, logger)
		if err != nil {
			return fmt.Errorf("failed to create config watcher: %w", err)
		}
		go func() {
			err := watcher.Watch(ctx, func() error {
				reloaded, err := config.LoadConfigWithEnvOverrides(cfgFile)
				if err != nil {
					return err
				}
				router.SetTargets(targetsFromConfig(reloaded))
				logger.Info("upstream targets reloaded",
					"backend", reloaded.Upstreams.Backend.BaseURL,
					"ai", reloaded.Upstreams.AI.BaseURL,
				)
				return nil
			})
			if err != nil {
				logger.Error("config watcher exited", "error", err)
			}
		}()
		defer watcher.Stop()
	}

	srv := server.NewServer(cfg, router, resolver, store, logger, collector)

	fmt.Printf("✓ Server listening on %s\n", cfg.Server.ListenAddress)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Printf("✓ Metrics endpoint: http://%s%s\n", cfg.Server.ListenAddress, cfg.Telemetry.Metrics.Path)
	}

	start := time.Now()
	err = srv.Start(ctx)
	logger.Info("gateway exited", "uptime", time.Since(start).String())
	return err
}

func targetsFromConfig(cfg *config.Config) upstream.Targets {
	return upstream.Targets{
		Backend: upstream.TargetConfig{
			BaseURL: cfg.Upstreams.Backend.BaseURL,
		},
		AI: upstream.TargetConfig{
			BaseURL:     cfg.Upstreams.AI.BaseURL,
			FunctionKey: cfg.Upstreams.AI.FunctionKey,
		},
	}
}
