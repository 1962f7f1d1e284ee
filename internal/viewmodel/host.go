package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/clambin/octoprint-poppy/internal/octoprint"
)

// MessageSource publishes the plugin messages received from the server
type MessageSource interface {
	Subscribe() <-chan octoprint.Message
	Unsubscribe(<-chan octoprint.Message)
}

// ErrNotRunning is returned by Dispatch when the Host's event loop has stopped
var ErrNotRunning = errors.New("host not running")

// Host owns the view models. All hooks, plugin messages and dispatched actions run on the goroutine calling Run,
// one at a time.
type Host struct {
	registry      *Registry
	collaborators Collaborators
	source        MessageSource
	actions       chan func()
	done          chan struct{}
	viewModels    map[string]ViewModel
	order         []string
	started       bool
	logger        *slog.Logger
	lock          sync.RWMutex
}

// NewHost returns a Host for the view models in registry
func NewHost(registry *Registry, collaborators Collaborators, source MessageSource, logger *slog.Logger) *Host {
	return &Host{
		registry:      registry,
		collaborators: collaborators,
		source:        source,
		actions:       make(chan func()),
		done:          make(chan struct{}),
		viewModels:    make(map[string]ViewModel),
		logger:        logger,
	}
}

// Start constructs the view models and runs their lifecycle hooks: construction, OnBeforeBinding, binding and
// OnStartup. Each phase completes for all view models before the next one begins.
func (h *Host) Start() error {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.started {
		return errors.New("host already started")
	}
	h.started = true

	for _, d := range h.registry.Descriptors() {
		if _, exists := h.viewModels[d.Name]; exists {
			return fmt.Errorf("%s: duplicate view model", d.Name)
		}
		c, err := h.collaboratorsFor(d)
		if err != nil {
			return fmt.Errorf("%s: %w", d.Name, err)
		}
		h.viewModels[d.Name] = d.Construct(c)
		h.order = append(h.order, d.Name)
	}

	for _, name := range h.order {
		if vm, ok := h.viewModels[name].(BeforeBinder); ok {
			vm.OnBeforeBinding()
		}
	}

	for _, d := range h.registry.Descriptors() {
		h.bind(d)
	}

	for _, name := range h.order {
		if vm, ok := h.viewModels[name].(Starter); ok {
			vm.OnStartup()
		}
	}
	h.logger.Debug("view models started", "count", len(h.order))
	return nil
}

func (h *Host) collaboratorsFor(d Descriptor) (Collaborators, error) {
	c := Collaborators{
		Page:      h.collaborators.Page,
		Transport: h.collaborators.Transport,
		Logger:    h.collaborators.Logger,
	}
	if c.Logger == nil {
		c.Logger = h.logger
	}
	c.Logger = c.Logger.With("viewModel", d.Name)

	for _, dependency := range d.Dependencies {
		switch dependency {
		case LoginStateDependency:
			if h.collaborators.LoginState == nil {
				return c, fmt.Errorf("dependency %q not available", dependency)
			}
			c.LoginState = h.collaborators.LoginState
		case SettingsDependency:
			if h.collaborators.Settings == nil {
				return c, fmt.Errorf("dependency %q not available", dependency)
			}
			c.Settings = h.collaborators.Settings
		default:
			return c, fmt.Errorf("unknown dependency %q", dependency)
		}
	}
	return c, nil
}

func (h *Host) bind(d Descriptor) {
	for _, selector := range d.Elements {
		if !h.collaborators.Page.Has(selector) {
			h.logger.Warn("element not found. skipping binding", "viewModel", d.Name, "element", selector)
		}
	}
}

// ViewModel returns the view model registered under name. It is only available once Start has been called.
func (h *Host) ViewModel(name string) (ViewModel, bool) {
	h.lock.RLock()
	defer h.lock.RUnlock()
	vm, ok := h.viewModels[name]
	return vm, ok
}

// Run starts the view models, if not yet started, and processes plugin messages and dispatched actions
// until ctx is cancelled.
func (h *Host) Run(ctx context.Context) error {
	h.lock.RLock()
	started := h.started
	h.lock.RUnlock()
	if !started {
		if err := h.Start(); err != nil {
			return err
		}
	}

	h.logger.Debug("started")
	defer h.logger.Debug("stopped")
	defer close(h.done)

	ch := h.source.Subscribe()
	defer h.source.Unsubscribe(ch)

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-ch:
			h.deliver(msg)
		case action := <-h.actions:
			action()
		}
	}
}

func (h *Host) deliver(msg octoprint.Message) {
	for _, name := range h.order {
		if vm, ok := h.viewModels[name].(PluginMessageHandler); ok {
			vm.OnDataUpdaterPluginMessage(msg.Plugin, msg.Data)
		}
	}
}

// Dispatch queues action to run on the event loop. It returns once the event loop has picked it up.
func (h *Host) Dispatch(ctx context.Context, action func()) error {
	select {
	case h.actions <- action:
		return nil
	case <-h.done:
		return ErrNotRunning
	case <-ctx.Done():
		return ctx.Err()
	}
}
