package status

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/clambin/octoprint-poppy/internal/chamber"
	"github.com/clambin/octoprint-poppy/internal/octoprint"
	"github.com/clambin/octoprint-poppy/internal/page"
	"github.com/clambin/octoprint-poppy/internal/viewmodel"
	"github.com/clambin/octoprint-poppy/pkg/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type fakePush struct {
	*pubsub.Publisher[octoprint.Message]
	messages []octoprint.Message
}

func (f fakePush) Run(ctx context.Context) error {
	for _, msg := range f.messages {
		f.Publish(msg)
	}
	<-ctx.Done()
	return nil
}

type settings struct{}

func (settings) Settings() octoprint.PluginSettings { return octoprint.DefaultPluginSettings }

func Test_showStatus(t *testing.T) {
	push := fakePush{
		Publisher: pubsub.New[octoprint.Message](0, slog.New(slog.DiscardHandler)),
		messages: []octoprint.Message{
			{Plugin: "psucontrol", Data: map[string]any{"isPSUOn": true}},
			{Plugin: "poppy", Data: map[string]any{"chamber_temperature": 28.5, "chamber_light_mode": 1.0}},
		},
	}
	s := chamber.New(viewmodel.Collaborators{Settings: settings{}, Page: page.New(chamber.IndicatorID)})

	var out bytes.Buffer
	e := yaml.NewEncoder(&out)
	require.NoError(t, showStatus(context.Background(), push, s, e))
	require.NoError(t, e.Close())
	assert.Equal(t, `settings:
    targetTemperatureWhenHeating: 40
    targetTemperatureWhenCooling: 30
    lightBrightnessLow: 10
    lightBrightnessMedium: 50
    lightBrightnessHigh: 100
chamber:
    chamberTemperature: 28.5
    chamberLightMode: low
    brightness: 10
    indicator:
        - low
`, out.String())
}

func Test_showStatus_timeout(t *testing.T) {
	push := fakePush{Publisher: pubsub.New[octoprint.Message](0, slog.New(slog.DiscardHandler))}
	s := chamber.New(viewmodel.Collaborators{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.EqualError(t, showStatus(ctx, push, s, yaml.NewEncoder(&bytes.Buffer{})), "no chamber state received")
}
