// Command sparksctl runs console operations from a terminal: roster imports, exports,
// schema migration, orphaned account reports and operator accounts.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sparkslearn/console/cmd/app"
	"github.com/sparkslearn/console/internal/bootstrap"
	"github.com/sparkslearn/console/internal/config"
	"github.com/sparkslearn/console/internal/logger"
)

type rootOptions struct {
	configPath string
	conf       *config.AppConfig
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "sparksctl",
		Short:         "Sparks Learn admin console tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("failed to initialize config -> %w", err)
			}
			if _, err = logger.Init(conf.API.Environment, conf.Log.Level); err != nil {
				return fmt.Errorf("failed to initialize logger -> %w", err)
			}
			opts.conf = conf

			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", app.ConfigPath(), "Path to the YAML config file")

	cmd.AddCommand(
		newImportCmd(opts),
		newExportCmd(opts),
		newMigrateCmd(opts),
		newOrphansCmd(opts),
		newOperatorCmd(opts),
	)

	return cmd
}

// withApp opens every store client for the duration of fn.
func withApp(ctx context.Context, opts *rootOptions, fn func(a *bootstrap.App) error) error {
	a, err := bootstrap.New(ctx, opts.conf)
	if err != nil {
		return fmt.Errorf("failed to initialize storage -> %w", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			zap.L().Warn("closing clients", zap.Error(err))
		}
	}()

	return fn(a)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
