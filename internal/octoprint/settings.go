package octoprint

import (
	"context"
	"fmt"
	"net/http"
)

// PluginSettings are the settings of the poppy plugin
type PluginSettings struct {
	TargetTemperatureWhenHeating int `json:"chamber_target_temperature_when_heating" yaml:"targetTemperatureWhenHeating"`
	TargetTemperatureWhenCooling int `json:"chamber_target_temperature_when_cooling" yaml:"targetTemperatureWhenCooling"`
	LightBrightnessLow           int `json:"chamber_light_brightness_low" yaml:"lightBrightnessLow"`
	LightBrightnessMedium        int `json:"chamber_light_brightness_medium" yaml:"lightBrightnessMedium"`
	LightBrightnessHigh          int `json:"chamber_light_brightness_high" yaml:"lightBrightnessHigh"`
}

// DefaultPluginSettings are the values the plugin uses for settings that were never saved
var DefaultPluginSettings = PluginSettings{
	TargetTemperatureWhenHeating: 40,
	TargetTemperatureWhenCooling: 30,
	LightBrightnessLow:           10,
	LightBrightnessMedium:        50,
	LightBrightnessHigh:          100,
}

// GetPluginSettings returns the current settings of the poppy plugin. Settings missing on the server keep their default.
func (c *Client) GetPluginSettings(ctx context.Context) (PluginSettings, error) {
	var response struct {
		Plugins struct {
			Poppy *PluginSettings `json:"poppy"`
		} `json:"plugins"`
	}
	settings := DefaultPluginSettings
	response.Plugins.Poppy = &settings

	if err := c.call(ctx, http.MethodGet, "api/settings", nil, &response); err != nil {
		return PluginSettings{}, fmt.Errorf("settings: %w", err)
	}
	if response.Plugins.Poppy == nil {
		return DefaultPluginSettings, nil
	}
	return *response.Plugins.Poppy, nil
}
