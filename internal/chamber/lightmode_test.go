package chamber

import (
	"encoding/json"
	"testing"

	"github.com/clambin/octoprint-poppy/internal/octoprint"
	"github.com/stretchr/testify/assert"
)

func TestParseLightMode(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  LightMode
	}{
		{name: "float", value: 2.0, want: LightModeMedium},
		{name: "int", value: 1, want: LightModeLow},
		{name: "int64", value: int64(3), want: LightModeHigh},
		{name: "json number", value: json.Number("0"), want: LightModeOff},
		{name: "bad json number", value: json.Number("x"), want: LightModeInvalid},
		{name: "out of range", value: 7.0, want: LightMode(7)},
		{name: "negative", value: -1.0, want: LightModeUnset},
		{name: "fraction", value: 1.5, want: LightModeInvalid},
		{name: "huge", value: 1e20, want: LightModeInvalid},
		{name: "string", value: "2", want: LightModeInvalid},
		{name: "bool", value: true, want: LightModeInvalid},
		{name: "nil", value: nil, want: LightModeUnset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLightMode(tt.value))
		})
	}
}

func TestLightMode_Class(t *testing.T) {
	for mode, want := range map[LightMode]string{
		LightModeOff:    "off",
		LightModeLow:    "low",
		LightModeMedium: "medium",
		LightModeHigh:   "high",
	} {
		class, ok := mode.Class()
		assert.True(t, ok)
		assert.Equal(t, want, class)
		assert.Equal(t, want, mode.String())
		assert.True(t, mode.Valid())
	}

	for _, mode := range []LightMode{LightModeUnset, LightModeInvalid, 4, -3} {
		_, ok := mode.Class()
		assert.False(t, ok, mode.String())
		assert.False(t, mode.Valid())
	}

	assert.Equal(t, "unset", LightModeUnset.String())
	assert.Equal(t, "invalid", LightModeInvalid.String())
	assert.Equal(t, "mode(4)", LightMode(4).String())
}

func TestLightMode_Next(t *testing.T) {
	tests := []struct {
		mode LightMode
		want LightMode
	}{
		{mode: LightModeOff, want: LightModeHigh},
		{mode: LightModeLow, want: LightModeOff},
		{mode: LightModeMedium, want: LightModeLow},
		{mode: LightModeHigh, want: LightModeMedium},
		{mode: 9, want: LightModeMedium},
		{mode: LightModeUnset, want: LightModeHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.mode.Next(), tt.mode.String())
	}
}

func TestLightMode_Brightness(t *testing.T) {
	settings := octoprint.DefaultPluginSettings
	assert.Equal(t, 0, LightModeUnset.Brightness(settings))
	assert.Equal(t, 0, LightModeOff.Brightness(settings))
	assert.Equal(t, 10, LightModeLow.Brightness(settings))
	assert.Equal(t, 50, LightModeMedium.Brightness(settings))
	assert.Equal(t, 100, LightModeHigh.Brightness(settings))
	assert.Equal(t, 100, LightMode(5).Brightness(settings))
}
