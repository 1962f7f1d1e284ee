// Package viewmodel hosts view models: it constructs them from registered descriptors, runs their lifecycle hooks
// and feeds them plugin messages and user actions from a single event loop.
package viewmodel

import (
	"log/slog"

	"github.com/clambin/octoprint-poppy/internal/octoprint"
	"github.com/clambin/octoprint-poppy/internal/page"
)

// Names of the collaborators a Descriptor can depend on
const (
	LoginStateDependency = "loginStateViewModel"
	SettingsDependency   = "settingsViewModel"
)

// ViewModel is any value constructed by a Descriptor. It may implement any of the hook interfaces below.
type ViewModel any

// BeforeBinder is called once all view models are constructed, before the page is bound
type BeforeBinder interface {
	OnBeforeBinding()
}

// Starter is called once the page is bound
type Starter interface {
	OnStartup()
}

// PluginMessageHandler receives every plugin message pushed by the server
type PluginMessageHandler interface {
	OnDataUpdaterPluginMessage(plugin string, data map[string]any)
}

// LoginStateProvider gives access to the current login
type LoginStateProvider interface {
	LoginState() octoprint.LoginState
}

// SettingsProvider gives access to the shared plugin settings
type SettingsProvider interface {
	Settings() octoprint.PluginSettings
}

// Transport sends commands to the server without waiting for the result
type Transport interface {
	Post(path string)
}

// Collaborators are handed to each view model's constructor.
// LoginState and Settings are only set if the descriptor lists them as a dependency.
type Collaborators struct {
	LoginState LoginStateProvider
	Settings   SettingsProvider
	Page       *page.Page
	Transport  Transport
	Logger     *slog.Logger
}

// Descriptor registers a view model with the Host
type Descriptor struct {
	// Name identifies the view model
	Name string
	// Construct builds the view model
	Construct func(Collaborators) ViewModel
	// Dependencies lists the collaborators the view model requires
	Dependencies []string
	// Elements are the selectors of the page elements the view model binds to
	Elements []string
}

// Registry holds the view model descriptors
type Registry struct {
	descriptors []Descriptor
}

// Register adds a descriptor. View models are constructed in registration order.
func (r *Registry) Register(d Descriptor) {
	r.descriptors = append(r.descriptors, d)
}

// Descriptors returns all registered descriptors
func (r *Registry) Descriptors() []Descriptor {
	return r.descriptors
}
