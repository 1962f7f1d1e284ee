package chamber

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/clambin/octoprint-poppy/internal/octoprint"
)

// LightMode is the brightness level of the chamber light
type LightMode int

const (
	LightModeOff    LightMode = 0
	LightModeLow    LightMode = 1
	LightModeMedium LightMode = 2
	LightModeHigh   LightMode = 3

	// LightModeUnset means no mode has been received yet.
	LightModeUnset LightMode = -1
	// LightModeInvalid is a received mode that isn't a whole number.
	LightModeInvalid LightMode = -2
)

var lightModeClasses = map[LightMode]string{
	LightModeOff:    "off",
	LightModeLow:    "low",
	LightModeMedium: "medium",
	LightModeHigh:   "high",
}

// indicatorClasses are all classes a LightMode can set on the indicator
var indicatorClasses = []string{"off", "low", "medium", "high"}

// ParseLightMode converts a pushed chamber_light_mode value. Whole numbers are kept as-is, even when out of range.
// nil yields LightModeUnset. Anything else yields LightModeInvalid.
func ParseLightMode(value any) LightMode {
	switch v := value.(type) {
	case nil:
		return LightModeUnset
	case LightMode:
		return v
	case int:
		return LightMode(v)
	case int64:
		return fromFloat(float64(v))
	case float64:
		return fromFloat(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return LightModeInvalid
		}
		return fromFloat(f)
	default:
		return LightModeInvalid
	}
}

func fromFloat(f float64) LightMode {
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return LightModeInvalid
	}
	return LightMode(f)
}

// Valid reports whether m is one of the four light modes
func (m LightMode) Valid() bool {
	_, ok := lightModeClasses[m]
	return ok
}

// Class returns the indicator class for m. ok is false if m is not a valid mode.
func (m LightMode) Class() (class string, ok bool) {
	class, ok = lightModeClasses[m]
	return class, ok
}

func (m LightMode) String() string {
	if class, ok := m.Class(); ok {
		return class
	}
	switch m {
	case LightModeUnset:
		return "unset"
	case LightModeInvalid:
		return "invalid"
	default:
		return "mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// Clamp limits m to the range of valid modes
func (m LightMode) Clamp() LightMode {
	return max(LightModeOff, min(m, LightModeHigh))
}

// Next returns the mode the server switches to when the light mode is toggled: each toggle dims the light
// by one level and toggling while off switches to high.
func (m LightMode) Next() LightMode {
	if m = m.Clamp(); m > LightModeOff {
		return m - 1
	}
	return LightModeHigh
}

// Brightness returns the brightness percentage the plugin drives the light at for mode m.
func (m LightMode) Brightness(settings octoprint.PluginSettings) int {
	switch {
	case m <= LightModeOff:
		return 0
	case m == LightModeLow:
		return settings.LightBrightnessLow
	case m == LightModeMedium:
		return settings.LightBrightnessMedium
	default:
		return settings.LightBrightnessHigh
	}
}
