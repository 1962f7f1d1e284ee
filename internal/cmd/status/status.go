package status

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/clambin/go-common/charmer"
	"github.com/clambin/octoprint-poppy/internal/app"
	"github.com/clambin/octoprint-poppy/internal/chamber"
	"github.com/clambin/octoprint-poppy/internal/octoprint"
	"github.com/clambin/octoprint-poppy/internal/viewmodel"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	Cmd = cobra.Command{
		Use:   "status",
		Short: "Wait for the plugin to push the chamber state and show it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), viper.GetDuration("status.timeout"))
			defer cancel()
			e := yaml.NewEncoder(os.Stdout)
			defer func() { _ = e.Close() }()
			return show(ctx, viper.GetViper(), e, slog.Default())
		},
	}

	args = charmer.Arguments{
		"status.timeout": {Default: 30 * time.Second, Help: "Time to wait for the chamber state"},
	}
)

func init() {
	_ = charmer.SetPersistentFlags(&Cmd, viper.GetViper(), args)
}

type Encoder interface {
	Encode(any) error
}

// PushSource delivers the plugin messages received on the push socket
type PushSource interface {
	viewmodel.MessageSource
	Run(ctx context.Context) error
}

type status struct {
	Settings octoprint.PluginSettings `yaml:"settings"`
	Chamber  chamber.Snapshot         `yaml:"chamber"`
}

func show(ctx context.Context, cfg *viper.Viper, e Encoder, logger *slog.Logger) error {
	c, err := app.NewClient(cfg, nil, logger.With("component", "octoprint"))
	if err != nil {
		return err
	}
	session := octoprint.NewSession(c)
	if err = session.Refresh(ctx); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	push := octoprint.NewPushClient(c.BaseURL(), session, cfg.GetDuration("push.reconnect"), logger.With("component", "push"))
	s := chamber.New(viewmodel.Collaborators{LoginState: session, Settings: session, Logger: logger})
	return showStatus(ctx, push, s, e)
}

// showStatus feeds the pushed messages to s until the plugin pushes its state, then encodes the result.
func showStatus(ctx context.Context, push PushSource, s *chamber.LightModeSync, e Encoder) error {
	s.OnBeforeBinding()
	s.OnStartup()

	ch := push.Subscribe()
	defer push.Unsubscribe(ch)

	ctx, cancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- push.Run(ctx) }()
	defer func() {
		cancel()
		<-errCh
	}()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return errors.New("no chamber state received")
			}
			return ctx.Err()
		case msg := <-ch:
			s.OnDataUpdaterPluginMessage(msg.Plugin, msg.Data)
			if msg.Plugin == chamber.PluginName {
				settings, _ := s.Settings()
				return e.Encode(status{Settings: settings, Chamber: s.Snapshot()})
			}
		}
	}
}
