package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/clambin/octoprint-poppy/internal/chamber"
	"github.com/clambin/octoprint-poppy/internal/octoprint"
)

// MessageSource publishes the plugin messages received from the server
type MessageSource interface {
	Subscribe() <-chan octoprint.Message
	Unsubscribe(<-chan octoprint.Message)
	Connected() bool
}

// State is the mirrored chamber state
type State interface {
	Snapshot() chamber.Snapshot
	LoggedIn() bool
}

// Health reports the mirrored chamber state. It reports unhealthy until the plugin pushed its first message.
type Health struct {
	source     MessageSource
	state      State
	logger     *slog.Logger
	lastUpdate time.Time
	lock       sync.RWMutex
}

func New(source MessageSource, state State, logger *slog.Logger) *Health {
	return &Health{
		source: source,
		state:  state,
		logger: logger,
	}
}

func (h *Health) Run(ctx context.Context) error {
	h.logger.Debug("started")
	defer h.logger.Debug("stopped")

	ch := h.source.Subscribe()
	defer h.source.Unsubscribe(ch)

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-ch:
			if msg.Plugin == chamber.PluginName {
				h.lock.Lock()
				h.lastUpdate = time.Now()
				h.lock.Unlock()
			}
		}
	}
}

type report struct {
	Connected  bool      `json:"connected"`
	LoggedIn   bool      `json:"loggedIn"`
	LastUpdate time.Time `json:"lastUpdate"`
	chamber.Snapshot
}

func (h *Health) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	h.lock.RLock()
	lastUpdate := h.lastUpdate
	h.lock.RUnlock()

	if lastUpdate.IsZero() {
		http.Error(w, "no update yet", http.StatusServiceUnavailable)
		return
	}

	r := report{
		Connected:  h.source.Connected(),
		LoggedIn:   h.state.LoggedIn(),
		LastUpdate: lastUpdate,
		Snapshot:   h.state.Snapshot(),
	}

	w.Header().Set("Content-Type", "application/json")

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
