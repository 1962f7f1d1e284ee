package health

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/clambin/octoprint-poppy/internal/chamber"
	"github.com/clambin/octoprint-poppy/internal/octoprint"
	"github.com/clambin/octoprint-poppy/internal/page"
	"github.com/clambin/octoprint-poppy/internal/viewmodel"
	"github.com/clambin/octoprint-poppy/pkg/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type source struct {
	*pubsub.Publisher[octoprint.Message]
}

func (source) Connected() bool { return true }

func TestHealth_ServeHTTP(t *testing.T) {
	s := source{Publisher: pubsub.New[octoprint.Message](0, slog.New(slog.DiscardHandler))}
	state := chamber.New(viewmodel.Collaborators{Page: page.New(chamber.IndicatorID)})
	state.OnStartup()

	h := New(s, state, slog.New(slog.DiscardHandler))
	go func() { _ = h.Run(t.Context()) }()

	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, &http.Request{})
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)

	assert.Eventually(t, func() bool { return s.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	// messages from other plugins don't count
	s.Publish(octoprint.Message{Plugin: "psucontrol"})

	data := map[string]any{"chamber_temperature": 41.0, "chamber_light_mode": 1.0}
	state.OnDataUpdaterPluginMessage("poppy", data)
	s.Publish(octoprint.Message{Plugin: "poppy", Data: data})

	assert.Eventually(t, func() bool {
		resp = httptest.NewRecorder()
		h.ServeHTTP(resp, &http.Request{})
		return resp.Code == http.StatusOK
	}, time.Second, 10*time.Millisecond)

	var r report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&r))
	assert.True(t, r.Connected)
	assert.False(t, r.LoggedIn)
	assert.Equal(t, 41.0, r.ChamberTemperature)
	assert.Equal(t, "low", r.ChamberLightMode)
	assert.Equal(t, []string{"low"}, r.Indicator)
}
