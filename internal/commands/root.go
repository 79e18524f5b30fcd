// Package commands implements the bookkeepingctl command line.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/SscSPs/bookkeeping_app/internal/middleware"
	"github.com/SscSPs/bookkeeping_app/internal/platform/bootstrap"
	"github.com/SscSPs/bookkeeping_app/internal/platform/config"
	"github.com/spf13/cobra"
)

// globalFlags override the environment configuration for a single invocation.
type globalFlags struct {
	debug    bool
	store    string
	seedFile string
	mapping  string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "bookkeepingctl",
		Short: "Operate the bookkeeping ledger from the command line",
		Long: `bookkeepingctl runs migrations, loads reference data, imports
transactions from CSV and prints ledger and tax reports.

Configuration is read from the environment (and .env) exactly like the
server; the flags below override it for one invocation.`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmd.SetContext(middleware.WithLogger(cmd.Context(), flags.logger()))
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.StringVar(&flags.store, "store", "", "override STORE (postgres or memory)")
	pf.StringVar(&flags.seedFile, "seed-file", "", "override SEED_FILE for the memory store")
	pf.StringVar(&flags.mapping, "mapping-file", "", "override MAPPING_FILE")

	rootCmd.AddCommand(
		newMigrateCommand(flags),
		newSeedCommand(flags),
		newImportCommand(flags),
		newLedgerCommand(flags),
		newTaxSummaryCommand(flags),
		newTokenCommand(flags),
	)

	return rootCmd
}

func (f *globalFlags) logger() *slog.Logger {
	level := slog.LevelInfo
	if f.debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (f *globalFlags) config() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if f.store != "" {
		cfg.Store = f.store
	}
	if f.seedFile != "" {
		cfg.SeedFile = f.seedFile
	}
	if f.mapping != "" {
		cfg.MappingFile = f.mapping
	}
	return cfg, nil
}

// openRuntime builds the services without running migrations.
func (f *globalFlags) openRuntime(ctx context.Context) (*bootstrap.Runtime, error) {
	cfg, err := f.config()
	if err != nil {
		return nil, err
	}
	return bootstrap.Open(ctx, cfg, f.logger(), bootstrap.Options{})
}
