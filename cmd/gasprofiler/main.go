package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/client/chain"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/config"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/constants"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/logger"
	"github.com/Codex-zero-source/Somnia-Gas-Profiler-sub000/services"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds the state shared by every subcommand
type app struct {
	envFile string
	dump    bool

	cfg    *config.Config
	client *chain.Client
	engine *services.Engine
	log    *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&app{}).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "gasprofiler",
		Short: "Gas estimation and paymaster cost modeling for Somnia",
		Long: `Profiles contract function gas usage over repeated runs, classifies
ERC-4337 paymasters and models their sponsorship overhead.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", config.DefaultEnvFile, "path to a .env file")
	flags.BoolVar(&a.dump, "dump", false, "print results with go-spew instead of JSON")

	root.AddCommand(
		newEstimateCmd(a),
		newProfileCmd(a),
		newClassifyCmd(a),
		newAnalyzeCmd(a),
		newCompareCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	logger.InitLoggerWithConfig(logger.LoggerConfig{
		Level:       cfg.LogLevel,
		Stage:       cfg.Stage,
		EnableJSON:  cfg.Stage == constants.ProdEnvironment,
		EnableColor: cfg.Stage != constants.ProdEnvironment,
	})
	a.log = logger.WithComponent(logger.ComponentCLI)
	for _, file := range cfg.MissingEnvFiles {
		a.log.Debug("env file not found", zap.String("path", file))
	}

	dialCtx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
	defer cancel()
	client, err := chain.Dial(dialCtx, cfg.ChainConfig())
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", cfg.RPCURL, err)
	}
	a.client = client

	tables := services.DefaultCostTables()
	tables.DefaultGasPriceWei = cfg.DefaultGasPriceWei
	entryPoint := cfg.EntryPoint
	a.engine = services.NewEngine(client, services.EngineConfig{
		Cache:       services.CacheOptions{TTL: cfg.CacheTTL, Size: cfg.CacheSize},
		Tables:      tables,
		RunDelay:    cfg.RunDelay,
		MaxParallel: cfg.MaxParallel,
		EntryPoint:  &entryPoint,
	})
	return nil
}

func (a *app) teardown(*cobra.Command, []string) {
	if a.client != nil {
		a.client.Close()
	}
	_ = logger.Sync()
}

func (a *app) render(cmd *cobra.Command, v interface{}) error {
	out := cmd.OutOrStdout()
	if a.dump {
		spew.Fdump(out, v)
		return nil
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
