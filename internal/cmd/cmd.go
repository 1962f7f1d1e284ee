package cmd

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/clambin/go-common/charmer"
	"github.com/clambin/octoprint-poppy/internal/cmd/monitor"
	"github.com/clambin/octoprint-poppy/internal/cmd/status"
	"github.com/clambin/octoprint-poppy/internal/cmd/toggle"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFilename string
	RootCmd        = cobra.Command{
		Use:   "poppy",
		Short: "Utility for the poppy OctoPrint plugin",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			charmer.SetJSONLogger(cmd, viper.GetBool("debug"))
		},
	}
)

var args = charmer.Arguments{
	"debug":             {Default: false, Help: "Log debug messages"},
	"octoprint.url":     {Default: "http://localhost:5000/", Help: "OctoPrint URL"},
	"octoprint.apikey":  {Default: "", Help: "OctoPrint API key"},
	"octoprint.timeout": {Default: 10 * time.Second, Help: "Timeout of OctoPrint API calls"},
	"push.reconnect":    {Default: 5 * time.Second, Help: "Delay before reconnecting to OctoPrint's push socket"},
	"exporter.addr":     {Default: ":9090", Help: "Address of Prometheus exporter"},
	"health.addr":       {Default: ":8080", Help: "Address of /health endpoint"},
	"slack.token":       {Default: "", Help: "Slack token"},
}

func init() {
	cobra.OnInitialize(initConfig)
	RootCmd.PersistentFlags().StringVar(&configFilename, "config", "", "Configuration file")
	if err := charmer.SetPersistentFlags(&RootCmd, viper.GetViper(), args); err != nil {
		panic("failed to set flags: " + err.Error())
	}

	RootCmd.AddCommand(&monitor.Cmd, &status.Cmd, &toggle.Cmd)
}

func initConfig() {
	if configFilename != "" {
		viper.SetConfigFile(configFilename)
	} else {
		viper.AddConfigPath("/etc/poppy/")
		viper.AddConfigPath("$HOME/.poppy")
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("POPPY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFilename != "" || !errors.As(err, &notFound) {
			slog.Error("failed to read config file", "err", err)
			os.Exit(1)
		}
	}
}
