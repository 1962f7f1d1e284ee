package toggle

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/clambin/octoprint-poppy/internal/app"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Cmd = cobra.Command{
	Use:   "toggle",
	Short: "Switch the chamber light to its next mode",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return toggle(cmd.Context(), viper.GetViper(), os.Stdout, slog.Default())
	},
}

// LightToggler advances the chamber light to its next mode
type LightToggler interface {
	ToggleChamberLightMode(ctx context.Context) error
}

func toggle(ctx context.Context, cfg *viper.Viper, w io.Writer, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	c, err := app.NewClient(cfg, nil, logger.With("component", "octoprint"))
	if err != nil {
		return err
	}
	return toggleLight(ctx, c, w)
}

func toggleLight(ctx context.Context, c LightToggler, w io.Writer) error {
	if err := c.ToggleChamberLightMode(ctx); err != nil {
		return fmt.Errorf("toggle: %w", err)
	}
	_, err := fmt.Fprintln(w, "chamber light toggled")
	return err
}
