package chamber_test

import (
	"log/slog"
	"testing"

	"github.com/clambin/octoprint-poppy/internal/chamber"
	"github.com/clambin/octoprint-poppy/internal/octoprint"
	"github.com/clambin/octoprint-poppy/internal/page"
	"github.com/clambin/octoprint-poppy/internal/viewmodel"
	"github.com/clambin/octoprint-poppy/internal/viewmodel/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginState octoprint.LoginState

func (l loginState) LoginState() octoprint.LoginState { return octoprint.LoginState(l) }

func newSync(t *testing.T) (*chamber.LightModeSync, *page.Page, *mocks.Transport) {
	t.Helper()
	p := page.New(chamber.IndicatorID)
	transport := mocks.NewTransport(t)
	settings := mocks.NewSettingsProvider(t)
	settings.EXPECT().Settings().Return(octoprint.DefaultPluginSettings).Maybe()
	s := chamber.New(viewmodel.Collaborators{
		LoginState: loginState{Name: "admin", Active: true},
		Settings:   settings,
		Page:       p,
		Transport:  transport,
		Logger:     slog.New(slog.DiscardHandler),
	})
	return s, p, transport
}

func startedSync(t *testing.T) (*chamber.LightModeSync, *page.Page, *mocks.Transport) {
	t.Helper()
	s, p, transport := newSync(t)
	s.OnBeforeBinding()
	s.OnStartup()
	return s, p, transport
}

func TestLightModeSync_initialState(t *testing.T) {
	s, p, _ := newSync(t)

	_, ok := s.ChamberTemperature()
	assert.False(t, ok)
	assert.Equal(t, chamber.LightModeUnset, s.ChamberLightMode())
	assert.Empty(t, p.Lookup(chamber.IndicatorID).Classes())

	_, ok = s.Settings()
	assert.False(t, ok)
	s.OnBeforeBinding()
	settings, ok := s.Settings()
	require.True(t, ok)
	assert.Equal(t, octoprint.DefaultPluginSettings, settings)
	assert.True(t, s.LoggedIn())
}

func TestLightModeSync_renderLightMode(t *testing.T) {
	tests := []struct {
		name string
		mode any
		want []string
	}{
		{name: "off", mode: 0.0, want: []string{"off"}},
		{name: "low", mode: 1.0, want: []string{"low"}},
		{name: "medium", mode: 2.0, want: []string{"medium"}},
		{name: "high", mode: 3.0, want: []string{"high"}},
		{name: "out of range", mode: 4.0, want: nil},
		{name: "negative", mode: -2.0, want: nil},
		{name: "fraction", mode: 2.5, want: nil},
		{name: "string", mode: "2", want: nil},
		{name: "null", mode: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, p, _ := startedSync(t)
			indicator := p.Lookup(chamber.IndicatorID)

			// start from a different valid mode, so the class is always replaced
			s.OnDataUpdaterPluginMessage("poppy", map[string]any{"chamber_light_mode": 3.0})
			if tt.mode == 3.0 {
				s.OnDataUpdaterPluginMessage("poppy", map[string]any{"chamber_light_mode": 0.0})
			}

			s.OnDataUpdaterPluginMessage("poppy", map[string]any{"chamber_light_mode": tt.mode})
			if tt.want == nil {
				assert.Empty(t, indicator.Classes())
			} else {
				assert.Equal(t, tt.want, indicator.Classes())
			}
		})
	}
}

func TestLightModeSync_otherClassesUntouched(t *testing.T) {
	s, p, _ := startedSync(t)
	indicator := p.Lookup(chamber.IndicatorID)
	indicator.AddClass("indicator", "low")

	s.OnDataUpdaterPluginMessage("poppy", map[string]any{"chamber_light_mode": 2.0})
	assert.Equal(t, []string{"indicator", "medium"}, indicator.Classes())
}

func TestLightModeSync_otherPlugin(t *testing.T) {
	s, p, _ := startedSync(t)

	s.OnDataUpdaterPluginMessage("psucontrol", map[string]any{"chamber_temperature": 42.5, "chamber_light_mode": 2.0})
	s.OnDataUpdaterPluginMessage("Poppy", map[string]any{"chamber_temperature": 42.5, "chamber_light_mode": 2.0})
	s.OnDataUpdaterPluginMessage("", nil)

	_, ok := s.ChamberTemperature()
	assert.False(t, ok)
	assert.Equal(t, chamber.LightModeUnset, s.ChamberLightMode())
	assert.Empty(t, p.Lookup(chamber.IndicatorID).Classes())
}

func TestLightModeSync_temperature(t *testing.T) {
	s, p, _ := startedSync(t)

	s.OnDataUpdaterPluginMessage("poppy", map[string]any{"chamber_temperature": 42.5})
	temperature, ok := s.ChamberTemperature()
	require.True(t, ok)
	assert.Equal(t, 42.5, temperature)
	assert.Equal(t, chamber.LightModeUnset, s.ChamberLightMode())
	assert.Empty(t, p.Lookup(chamber.IndicatorID).Classes())

	// values are passed through as received
	s.OnDataUpdaterPluginMessage("poppy", map[string]any{"chamber_temperature": map[string]any{"celsius": 30}})
	temperature, _ = s.ChamberTemperature()
	assert.Equal(t, map[string]any{"celsius": 30}, temperature)

	// missing keys leave the value untouched
	s.OnDataUpdaterPluginMessage("poppy", map[string]any{"unrelated": true})
	temperature, _ = s.ChamberTemperature()
	assert.Equal(t, map[string]any{"celsius": 30}, temperature)
}

func TestLightModeSync_lightMode(t *testing.T) {
	s, p, _ := startedSync(t)

	s.OnDataUpdaterPluginMessage("poppy", map[string]any{"chamber_temperature": 42.5})
	s.OnDataUpdaterPluginMessage("poppy", map[string]any{"chamber_light_mode": 2.0})
	assert.Equal(t, chamber.LightModeMedium, s.ChamberLightMode())
	assert.Equal(t, []string{"medium"}, p.Lookup(chamber.IndicatorID).Classes())

	temperature, _ := s.ChamberTemperature()
	assert.Equal(t, 42.5, temperature)
}

func TestLightModeSync_beforeStartup(t *testing.T) {
	s, p, _ := newSync(t)
	indicator := p.Lookup(chamber.IndicatorID)

	s.OnDataUpdaterPluginMessage("poppy", map[string]any{"chamber_light_mode": 1.0})
	assert.Equal(t, chamber.LightModeLow, s.ChamberLightMode())
	assert.Empty(t, indicator.Classes())

	s.OnBeforeBinding()
	s.OnStartup()
	// the mode received before startup is not rendered ...
	assert.Empty(t, indicator.Classes())
	// ... nor is the same mode pushed again
	s.OnDataUpdaterPluginMessage("poppy", map[string]any{"chamber_light_mode": 1.0})
	assert.Empty(t, indicator.Classes())
	// the next change is
	s.OnDataUpdaterPluginMessage("poppy", map[string]any{"chamber_light_mode": 3.0})
	assert.Equal(t, []string{"high"}, indicator.Classes())
}

func TestLightModeSync_missingIndicator(t *testing.T) {
	s := chamber.New(viewmodel.Collaborators{Page: page.New()})
	s.OnStartup()
	s.OnDataUpdaterPluginMessage("poppy", map[string]any{"chamber_light_mode": 1.0})
	assert.Equal(t, chamber.LightModeLow, s.ChamberLightMode())
	assert.Empty(t, s.Indicator().Classes())
	assert.False(t, s.LoggedIn())
}

func TestLightModeSync_ToggleChamberLightMode(t *testing.T) {
	s, p, transport := startedSync(t)
	s.OnDataUpdaterPluginMessage("poppy", map[string]any{"chamber_light_mode": 2.0})

	transport.EXPECT().Post("plugin/poppy/chamberLight/toggleMode").Once()
	s.ToggleChamberLightMode()

	assert.Equal(t, chamber.LightModeMedium, s.ChamberLightMode())
	assert.Equal(t, []string{"medium"}, p.Lookup(chamber.IndicatorID).Classes())
}

func TestLightModeSync_Snapshot(t *testing.T) {
	s, _, _ := startedSync(t)
	assert.Equal(t, chamber.Snapshot{ChamberLightMode: "unset"}, s.Snapshot())

	s.OnDataUpdaterPluginMessage("poppy", map[string]any{"chamber_temperature": 30.5, "chamber_light_mode": 3.0})
	brightness := 100
	assert.Equal(t, chamber.Snapshot{
		ChamberTemperature: 30.5,
		ChamberLightMode:   "high",
		Brightness:         &brightness,
		Indicator:          []string{"high"},
	}, s.Snapshot())
}
