package collector

import (
	"log/slog"

	"github.com/clambin/octoprint-poppy/internal/chamber"
	"github.com/clambin/octoprint-poppy/internal/octoprint"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	chamberTemperatureCelsius = prometheus.NewDesc(
		prometheus.BuildFQName("poppy", "chamber", "temperature_celsius"),
		"Current chamber temperature in degrees celsius",
		nil,
		nil,
	)
	chamberLightMode = prometheus.NewDesc(
		prometheus.BuildFQName("poppy", "chamber", "light_mode"),
		"Current chamber light mode (0: off, 1: low, 2: medium, 3: high). Label mode names the mode",
		[]string{"mode"},
		nil,
	)
	chamberLightBrightness = prometheus.NewDesc(
		prometheus.BuildFQName("poppy", "chamber", "light_brightness_percentage"),
		"Brightness of the chamber light in percentage (0-100)",
		nil,
		nil,
	)
	pushConnected = prometheus.NewDesc(
		prometheus.BuildFQName("poppy", "push", "connected"),
		"1 if the push socket to OctoPrint is connected",
		nil,
		nil,
	)
)

// State is the mirrored chamber state
type State interface {
	ChamberTemperature() (any, bool)
	ChamberLightMode() chamber.LightMode
	Settings() (octoprint.PluginSettings, bool)
}

// Connection reports the state of the push socket
type Connection interface {
	Connected() bool
}

var _ prometheus.Collector = &Collector{}

// Collector exports the mirrored chamber state as Prometheus metrics
type Collector struct {
	State      State
	Connection Connection
	Logger     *slog.Logger
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- chamberTemperatureCelsius
	ch <- chamberLightMode
	ch <- chamberLightBrightness
	ch <- pushConnected
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.collectConnection(ch)
	c.collectTemperature(ch)
	c.collectLightMode(ch)
}

func (c *Collector) collectConnection(ch chan<- prometheus.Metric) {
	if c.Connection == nil {
		return
	}
	var value float64
	if c.Connection.Connected() {
		value = 1
	}
	ch <- prometheus.MustNewConstMetric(pushConnected, prometheus.GaugeValue, value)
}

func (c *Collector) collectTemperature(ch chan<- prometheus.Metric) {
	value, ok := c.State.ChamberTemperature()
	if !ok {
		return
	}
	temperature, ok := value.(float64)
	if !ok {
		c.Logger.Debug("chamber temperature is not a number. skipping", "temperature", value)
		return
	}
	ch <- prometheus.MustNewConstMetric(chamberTemperatureCelsius, prometheus.GaugeValue, temperature)
}

func (c *Collector) collectLightMode(ch chan<- prometheus.Metric) {
	mode := c.State.ChamberLightMode()
	if !mode.Valid() {
		return
	}
	ch <- prometheus.MustNewConstMetric(chamberLightMode, prometheus.GaugeValue, float64(mode), mode.String())

	if settings, ok := c.State.Settings(); ok {
		ch <- prometheus.MustNewConstMetric(chamberLightBrightness, prometheus.GaugeValue, float64(mode.Brightness(settings)))
	}
}
