package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/clambin/go-common/http/metrics"
	"github.com/clambin/go-common/slackbot"
	"github.com/clambin/octoprint-poppy/internal/bot"
	"github.com/clambin/octoprint-poppy/internal/chamber"
	"github.com/clambin/octoprint-poppy/internal/collector"
	"github.com/clambin/octoprint-poppy/internal/health"
	"github.com/clambin/octoprint-poppy/internal/octoprint"
	"github.com/clambin/octoprint-poppy/internal/page"
	"github.com/clambin/octoprint-poppy/internal/viewmodel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// Task is a long-running component
type Task interface {
	Run(ctx context.Context) error
}

// App runs all components of the monitor
type App struct {
	Session *octoprint.Session
	Host    *viewmodel.Host
	Chamber *chamber.LightModeSync
	tasks   []Task
	logger  *slog.Logger
}

// NewClient returns an OctoPrint client configured from cfg
func NewClient(cfg *viper.Viper, requestMetrics metrics.RequestMetrics, logger *slog.Logger) (*octoprint.Client, error) {
	options := []octoprint.Option{
		octoprint.WithTimeout(cfg.GetDuration("octoprint.timeout")),
		octoprint.WithLogger(logger),
	}
	if requestMetrics != nil {
		options = append(options, octoprint.WithRequestMetrics(requestMetrics))
	}
	c, err := octoprint.New(cfg.GetString("octoprint.url"), cfg.GetString("octoprint.apikey"), options...)
	if err != nil {
		return nil, fmt.Errorf("octoprint: %w", err)
	}
	return c, nil
}

// New builds the monitor. Metrics are registered with registry, if not nil.
func New(cfg *viper.Viper, version string, registry prometheus.Registerer, logger *slog.Logger) (*App, error) {
	requestMetrics := metrics.NewRequestMetrics(metrics.Options{Namespace: "poppy", Subsystem: "octoprint"})
	if registry != nil {
		registry.MustRegister(requestMetrics)
	}
	client, err := NewClient(cfg, requestMetrics, logger.With("component", "octoprint"))
	if err != nil {
		return nil, err
	}
	return newApp(cfg, client, version, registry, logger)
}

func newApp(cfg *viper.Viper, client *octoprint.Client, version string, registry prometheus.Registerer, l *slog.Logger) (*App, error) {
	a := App{
		Session: octoprint.NewSession(client),
		logger:  l,
	}

	// Push socket
	push := octoprint.NewPushClient(client.BaseURL(), a.Session, cfg.GetDuration("push.reconnect"), l.With("component", "push"))
	a.tasks = append(a.tasks, push)

	// View models
	var r viewmodel.Registry
	r.Register(chamber.Descriptor)
	a.Host = viewmodel.NewHost(&r, viewmodel.Collaborators{
		LoginState: a.Session,
		Settings:   a.Session,
		Page:       page.New(chamber.IndicatorID, "navbar_plugin_poppy", "settings_plugin_poppy"),
		Transport:  client,
		Logger:     l.With("component", "viewmodel"),
	}, push, l.With("component", "host"))
	if err := a.Host.Start(); err != nil {
		return nil, fmt.Errorf("viewmodels: %w", err)
	}
	vm, _ := a.Host.ViewModel(chamber.PluginName)
	a.Chamber = vm.(*chamber.LightModeSync)
	a.tasks = append(a.tasks, a.Host)

	// Collector
	if registry != nil {
		registry.MustRegister(&collector.Collector{State: a.Chamber, Connection: push, Logger: l.With("component", "collector")})
	}

	// Prometheus Server
	m := http.NewServeMux()
	m.Handle("/metrics", promhttp.Handler())
	a.tasks = append(a.tasks, &httpServer{addr: cfg.GetString("exporter.addr"), handler: m})

	// Health Endpoint
	h := health.New(push, a.Chamber, l.With("component", "health"))
	a.tasks = append(a.tasks, h)
	m = http.NewServeMux()
	m.Handle("/health", h)
	a.tasks = append(a.tasks, &httpServer{addr: cfg.GetString("health.addr"), handler: m})

	// Slackbot
	if token := cfg.GetString("slack.token"); token != "" {
		b := slackbot.New(
			token,
			slackbot.WithName("poppyBot "+version),
			slackbot.WithLogger(l.With(slog.String("component", "slackbot"))),
		)
		bot.New(b, a.Chamber, a.Host, l.With(slog.String("component", "poppybot")))
		a.tasks = append(a.tasks, b)
	}

	return &a, nil
}

// Run loads the session and runs all tasks until ctx is cancelled or a task fails
func (a *App) Run(ctx context.Context) error {
	if err := a.Session.Refresh(ctx); err != nil {
		// the push client logs in again when it connects
		a.logger.Warn("failed to load session", "err", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, task := range a.tasks {
		g.Go(func() error { return task.Run(ctx) })
	}
	return g.Wait()
}

type httpServer struct {
	addr    string
	handler http.Handler
}

func (s *httpServer) Run(ctx context.Context) error {
	server := http.Server{Addr: s.addr, Handler: s.handler, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server %s: %w", s.addr, err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
