package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/clambin/go-common/slackbot"
	"github.com/clambin/octoprint-poppy/internal/chamber"
	"github.com/clambin/octoprint-poppy/internal/octoprint"
	"github.com/slack-go/slack"
)

// SlackBot registers the bot's commands
type SlackBot interface {
	Register(name string, command slackbot.CommandFunc)
}

// Chamber is the mirrored chamber state
type Chamber interface {
	ChamberTemperature() (any, bool)
	ChamberLightMode() chamber.LightMode
	Settings() (octoprint.PluginSettings, bool)
	ToggleChamberLightMode()
}

// Dispatcher runs an action on the view models' event loop
type Dispatcher interface {
	Dispatch(ctx context.Context, action func()) error
}

// Bot implements the chat commands to report the chamber state and toggle the chamber light.
type Bot struct {
	chamber    Chamber
	dispatcher Dispatcher
	logger     *slog.Logger
}

func New(b SlackBot, c Chamber, d Dispatcher, logger *slog.Logger) *Bot {
	bot := Bot{
		chamber:    c,
		dispatcher: d,
		logger:     logger,
	}
	b.Register("chamber", bot.ReportChamber)
	b.Register("light", bot.ToggleLight)
	return &bot
}

func (b *Bot) ReportChamber(_ context.Context, _ ...string) []slack.Attachment {
	temperature, ok := b.chamber.ChamberTemperature()
	if !ok {
		return []slack.Attachment{{
			Color: "bad",
			Text:  "no updates yet. please check back later",
		}}
	}

	text := "temperature: " + formatTemperature(temperature)
	mode := b.chamber.ChamberLightMode()
	text += "\nlight: " + mode.String()
	if settings, ok := b.chamber.Settings(); ok && mode.Valid() {
		text += fmt.Sprintf(" (%d%%)", mode.Brightness(settings))
	}

	return []slack.Attachment{{
		Color: "good",
		Title: "chamber:",
		Text:  text,
	}}
}

func formatTemperature(temperature any) string {
	if celsius, ok := temperature.(float64); ok {
		return fmt.Sprintf("%.1fºC", celsius)
	}
	return fmt.Sprint(temperature)
}

func (b *Bot) ToggleLight(ctx context.Context, _ ...string) []slack.Attachment {
	if err := b.dispatcher.Dispatch(ctx, b.chamber.ToggleChamberLightMode); err != nil {
		b.logger.Warn("failed to toggle chamber light", "err", err)
		return []slack.Attachment{{
			Color: "bad",
			Text:  "failed to toggle the chamber light: " + err.Error(),
		}}
	}
	return []slack.Attachment{{
		Color: "good",
		Text:  "switching chamber light to " + b.chamber.ChamberLightMode().Next().String(),
	}}
}
