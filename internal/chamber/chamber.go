// Package chamber mirrors the chamber state pushed by the poppy plugin and renders the chamber light mode
// on the light indicator.
package chamber

import (
	"log/slog"

	"github.com/clambin/octoprint-poppy/internal/octoprint"
	"github.com/clambin/octoprint-poppy/internal/page"
	"github.com/clambin/octoprint-poppy/internal/viewmodel"
	"github.com/clambin/octoprint-poppy/pkg/observable"
)

const (
	// PluginName is the identifier of the poppy plugin. Only its messages are processed.
	PluginName = "poppy"
	// IndicatorID is the id of the chamber light indicator element
	IndicatorID = "poppy_chamber_light_indicator"

	keyChamberTemperature = "chamber_temperature"
	keyChamberLightMode   = "chamber_light_mode"
)

// Descriptor registers LightModeSync with a viewmodel.Host
var Descriptor = viewmodel.Descriptor{
	Name:         PluginName,
	Construct:    func(c viewmodel.Collaborators) viewmodel.ViewModel { return New(c) },
	Dependencies: []string{viewmodel.LoginStateDependency, viewmodel.SettingsDependency},
	Elements:     []string{"#navbar_plugin_poppy", "#settings_plugin_poppy"},
}

var (
	_ viewmodel.BeforeBinder         = &LightModeSync{}
	_ viewmodel.Starter              = &LightModeSync{}
	_ viewmodel.PluginMessageHandler = &LightModeSync{}
)

// LightModeSync mirrors the chamber temperature and chamber light mode pushed by the plugin.
// Once started, every change of the light mode replaces the mode class of the light indicator.
type LightModeSync struct {
	loginState         viewmodel.LoginStateProvider
	settingsViewModel  viewmodel.SettingsProvider
	settings           viewmodel.SettingsProvider
	transport          viewmodel.Transport
	indicator          page.Element
	chamberTemperature *observable.Value[any]
	chamberLightMode   *observable.Value[LightMode]
	logger             *slog.Logger
}

// New returns a LightModeSync. The light indicator is looked up on c.Page once.
func New(c viewmodel.Collaborators) *LightModeSync {
	s := LightModeSync{
		loginState:         c.LoginState,
		settingsViewModel:  c.Settings,
		transport:          c.Transport,
		indicator:          c.Page.Lookup(IndicatorID),
		chamberTemperature: observable.New(observable.WithEquality(samePrimitive)),
		chamberLightMode:   observable.New(observable.WithEquality(func(a, b LightMode) bool { return a == b })),
		logger:             c.Logger,
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return &s
}

// samePrimitive matches the change detection of the page: only equal primitive values count as unchanged.
func samePrimitive(a, b any) bool {
	switch a.(type) {
	case nil, bool, string, float64, float32, int, int64:
		return a == b
	default:
		return false
	}
}

// OnBeforeBinding takes a reference to the shared plugin settings
func (s *LightModeSync) OnBeforeBinding() {
	s.settings = s.settingsViewModel
}

// OnStartup installs the reaction that renders light mode changes on the indicator.
// A mode received before startup is not rendered until the next change.
func (s *LightModeSync) OnStartup() {
	s.chamberLightMode.Subscribe(s.renderLightMode)
}

func (s *LightModeSync) renderLightMode(mode LightMode) {
	s.indicator.RemoveClass(indicatorClasses...)
	if class, ok := mode.Class(); ok {
		s.indicator.AddClass(class)
	}
	s.logger.Debug("chamber light mode changed", "mode", mode)
}

// OnDataUpdaterPluginMessage processes a message pushed by a plugin. Messages of other plugins are ignored,
// as are keys the message doesn't carry.
func (s *LightModeSync) OnDataUpdaterPluginMessage(plugin string, data map[string]any) {
	if plugin != PluginName {
		return
	}
	if temperature, ok := data[keyChamberTemperature]; ok {
		s.chamberTemperature.Set(temperature)
	}
	if mode, ok := data[keyChamberLightMode]; ok {
		s.chamberLightMode.Set(ParseLightMode(mode))
	}
}

// ToggleChamberLightMode asks the plugin to advance the light to its next mode. The new mode arrives later,
// as a plugin message.
func (s *LightModeSync) ToggleChamberLightMode() {
	s.transport.Post(octoprint.ToggleLightModePath)
}

// ChamberTemperature returns the last received chamber temperature, as received
func (s *LightModeSync) ChamberTemperature() (any, bool) {
	return s.chamberTemperature.Get()
}

// ChamberLightMode returns the last received chamber light mode
func (s *LightModeSync) ChamberLightMode() LightMode {
	if mode, ok := s.chamberLightMode.Get(); ok {
		return mode
	}
	return LightModeUnset
}

// Indicator returns the light indicator element
func (s *LightModeSync) Indicator() page.Element {
	return s.indicator
}

// Settings returns the plugin settings. ok is false before OnBeforeBinding was called.
func (s *LightModeSync) Settings() (octoprint.PluginSettings, bool) {
	if s.settings == nil {
		return octoprint.PluginSettings{}, false
	}
	return s.settings.Settings(), true
}

// LoggedIn reports whether the client is logged in as an active user
func (s *LightModeSync) LoggedIn() bool {
	return s.loginState != nil && s.loginState.LoginState().IsUser()
}

// Snapshot is the mirrored state at one point in time
type Snapshot struct {
	ChamberTemperature any      `json:"chamberTemperature,omitempty" yaml:"chamberTemperature,omitempty"`
	ChamberLightMode   string   `json:"chamberLightMode" yaml:"chamberLightMode"`
	Brightness         *int     `json:"brightness,omitempty" yaml:"brightness,omitempty"`
	Indicator          []string `json:"indicator" yaml:"indicator"`
}

// Snapshot returns the current state
func (s *LightModeSync) Snapshot() Snapshot {
	mode := s.ChamberLightMode()
	snapshot := Snapshot{
		ChamberLightMode: mode.String(),
		Indicator:        s.indicator.Classes(),
	}
	if temperature, ok := s.ChamberTemperature(); ok {
		snapshot.ChamberTemperature = temperature
	}
	if settings, ok := s.Settings(); ok && mode.Valid() {
		brightness := mode.Brightness(settings)
		snapshot.Brightness = &brightness
	}
	return snapshot
}
