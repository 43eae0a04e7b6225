package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/connectn-go/internal/config"
	"github.com/mcoot/connectn-go/internal/factory"
	redisstorage "github.com/mcoot/connectn-go/internal/storage/redis"
	"github.com/mcoot/connectn-go/internal/telemetry"
)

// Version is stamped at build time
var Version = "dev"

var (
	cfg             *config.Config
	app             *factory.App
	logger          *slog.Logger
	shutdownTracing telemetry.Shutdown
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	loaded, loadErr := config.Load(config.DefaultEnvFile)
	if loadErr != nil {
		loaded = &config.Config{}
	}
	cfg = loaded

	rootCmd := &cobra.Command{
		Use:   "connectn",
		Short: "Play connect-N games in the terminal",
		Long: `connectn plays "N in a row" games on a rectangular grid between two or
more players. Each seat is either a human at the keyboard or an automated
strategy. Rule presets decide the grid size, the streak needed to win and
whether ascending diagonals count.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if loadErr != nil {
				return loadErr
			}
			return setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return teardown(cmd.Context())
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json (env: CONNECTN_OUTPUT)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output, same as --log-level debug")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error (env: CONNECTN_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text, json (env: CONNECTN_LOG_FORMAT)")
	rootCmd.PersistentFlags().StringVar(&cfg.StorageType, "storage", cfg.StorageType, "Preset storage: memory, redis (env: CONNECTN_STORAGE)")
	rootCmd.PersistentFlags().StringVar(&cfg.Redis.URL, "redis-url", cfg.Redis.URL, "Redis URL (env: CONNECTN_REDIS_URL)")
	rootCmd.PersistentFlags().Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for automated strategies, 0 for a random seed (env: CONNECTN_SEED)")
	rootCmd.PersistentFlags().BoolVar(&cfg.Trace, "trace", cfg.Trace, "Write OpenTelemetry spans to stderr (env: CONNECTN_TRACE)")

	// Add subcommands
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newPresetCmd())
	rootCmd.AddCommand(newStrategiesCmd())

	return rootCmd
}

// setup builds the logger, tracer and application from the merged flags and environment
func setup(cmd *cobra.Command) error {
	if cfg.Verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger = NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)

	var traceOut io.Writer
	if cfg.Trace {
		traceOut = cmd.ErrOrStderr()
	}
	tracer, shutdown, err := telemetry.InitTracing(traceOut, Version)
	if err != nil {
		return err
	}
	shutdownTracing = shutdown

	factoryCfg := factory.Config{
		Logger:      logger,
		Tracer:      tracer,
		Seed:        cfg.Seed,
		StorageType: cfg.StorageType,
	}
	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Redis.URL
		redisCfg.PoolSize = cfg.Redis.PoolSize
		redisCfg.MinIdleConns = cfg.Redis.MinIdleConns
		redisCfg.PresetTTL = cfg.Redis.PresetTTL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err = factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return err
	}
	return nil
}

func teardown(ctx context.Context) error {
	var errs []error
	if app != nil {
		errs = append(errs, app.Close())
		app = nil
	}
	if shutdownTracing != nil {
		errs = append(errs, shutdownTracing(ctx))
		shutdownTracing = nil
	}
	return errors.Join(errs...)
}

// Run executes the command line args against the given streams
func Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// PersistentPostRunE is skipped when a command fails
		_ = teardown(ctx)
		return err
	}
	return nil
}

// Execute runs the root command
func Execute() {
	if err := Run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
