package monitor

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/clambin/octoprint-poppy/internal/app"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Cmd = cobra.Command{
	Use:   "monitor",
	Short: "Mirror the chamber state, export it to Prometheus and serve the chat bot",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		return run(ctx, viper.GetViper(), cmd.Root().Version, prometheus.DefaultRegisterer, slog.Default())
	},
}

func run(ctx context.Context, cfg *viper.Viper, version string, registry prometheus.Registerer, logger *slog.Logger) error {
	logger.Info("poppy monitor starting", "version", version)
	defer logger.Info("poppy monitor stopped")

	a, err := app.New(cfg, version, registry, logger)
	if err != nil {
		return err
	}
	return a.Run(ctx)
}
