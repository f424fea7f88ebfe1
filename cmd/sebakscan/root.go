package sebakscan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/manifest-network/sebakscan/internal/client"
	"github.com/manifest-network/sebakscan/internal/config"
	"github.com/manifest-network/sebakscan/internal/metrics"
	"github.com/manifest-network/sebakscan/internal/output"
	"github.com/manifest-network/sebakscan/internal/service"
	"github.com/manifest-network/sebakscan/internal/supply"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	v          = viper.New()
	configFile string
	debug      bool
)

// app holds what every subcommand needs once the configuration is loaded.
type app struct {
	cfg           config.ExploreConfig
	svc           *service.Service
	out           output.OutputHandler
	metricsServer *http.Server
}

var current *app

var rootCmd = &cobra.Command{
	Use:   "sebakscan",
	Short: "Read-only explorer for the SEBAK ledger API",
	Long: `sebakscan reads blocks, transactions, operations, accounts and frozen
accounts from a SEBAK node and pages through them using the links the node
returns.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	config.SetDefaults(v)
	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "path to a config file (yaml, toml or json)")
	flags.BoolVarP(&debug, "debug", "D", false, "enable debug logging")
	flags.String("api-url", "", "base URL of the SEBAK node API")
	flags.Duration("timeout", config.DefaultTimeout, "HTTP request timeout")
	flags.String("pf00-start-height", "", "start height of the PF00 inflation schedule")
	flags.StringP("output", "o", config.OutputTable, "output format: table or json")
	flags.String("metrics-addr", "", "serve Prometheus metrics on this address while running")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-format", "text", "log format: text or json")

	bindFlags(map[string]string{
		config.KeyAPIURL:          "api-url",
		config.KeyClientTimeout:   "timeout",
		config.KeyPF00StartHeight: "pf00-start-height",
		config.KeyOutputFormat:    "output",
		config.KeyMetricsAddr:     "metrics-addr",
		config.KeyLogLevel:        "log-level",
		config.KeyLogFormat:       "log-format",
	})

	rootCmd.AddCommand(
		blocksCmd(),
		blockCmd(),
		transactionsCmd(),
		transactionCmd(),
		accountCmd(),
		operationsCmd(),
		frozenCmd(),
		infoCmd(),
		lookupCmd(),
		summaryCmd(),
	)
}

func bindFlags(keys map[string]string) {
	for key, flag := range keys {
		if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", flag, err))
		}
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogger() (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString(config.KeyLogLevel))); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	addSource := false
	if debug {
		level = slog.LevelDebug
		addSource = true
	}

	opts := &slog.HandlerOptions{Level: level, AddSource: addSource}
	var handler slog.Handler
	switch v.GetString(config.KeyLogFormat) {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		return nil, fmt.Errorf("invalid log format %q", v.GetString(config.KeyLogFormat))
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}

func setup(cmd *cobra.Command, _ []string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	logger, err := setupLogger()
	if err != nil {
		return err
	}

	cfg, err := config.LoadExploreConfig(v)
	if err != nil {
		return err
	}
	slog.Debug("Configuration loaded", "api", cfg.Client.URL, "output", cfg.OutputFormat)

	registry := prometheus.NewRegistry()
	m := metrics.New()
	m.Register(registry)

	transport := client.NewRESTClient(cfg.Client, m, logger)
	calc := supply.NewCalculator(cfg.Inflation.PF00StartHeight)

	out, err := output.NewOutputHandler(cfg.OutputFormat, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	current = &app{
		cfg: cfg,
		svc: service.New(transport, calc, logger),
		out: out,
	}

	if cfg.MetricsAddr != "" {
		current.metricsServer = serveMetrics(cfg.MetricsAddr, registry)
	}
	return nil
}

func serveMetrics(addr string, registry *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("Serving Prometheus metrics", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", "error", err)
		}
	}()
	return server
}

func teardown(_ *cobra.Command, _ []string) error {
	if current == nil {
		return nil
	}
	if current.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := current.metricsServer.Shutdown(ctx); err != nil {
			slog.Warn("Failed to stop metrics server", "error", err)
		}
	}
	return current.out.Close()
}
