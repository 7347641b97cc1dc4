// Package settings holds the flags shared by all subcommands and turns them, together with the optional config file,
// into the effective configuration.
package settings

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/GottfriedHerold/Schoof/internal/config"
)

const (
	configFileFlag = "config"
	logLevelFlag   = "log-level"
	logJSONFlag    = "log-json"

	FlagMissingError = "required flag missing: %q"
)

var (
	cfgFilePath string
	logLevel    string
	logJSON     bool
)

// SetGlobalFlags registers the flags available to all subcommands.
func SetGlobalFlags(cmd *cobra.Command) {
	d := config.GetDefaultConfig()
	cmd.PersistentFlags().StringVar(
		&cfgFilePath,
		configFileFlag,
		"",
		"Used to specify a JSON config file path",
	)
	cmd.PersistentFlags().StringVar(
		&logLevel,
		logLevelFlag,
		d.LogLevel,
		"Used to specify the log level (trace, debug, info, warn, error)",
	)
	cmd.PersistentFlags().BoolVar(
		&logJSON,
		logJSONFlag,
		false,
		"Log in JSON format",
	)
}

// Load returns the configuration given by the config file (or the defaults) with the global flags applied,
// and sets up logging accordingly. Subcommands apply their own flags on top.
func Load(cmd *cobra.Command) (*config.Config, error) {
	conf := config.GetDefaultConfig()
	if cfgFilePath != "" {
		c, err := config.ConfigFromFile(cfgFilePath)
		if err != nil {
			log.Infof("Config file parsing error")
			return nil, err
		}
		conf = c
	}
	if cmd.Flags().Changed(logLevelFlag) {
		conf.LogLevel = logLevel
	}
	if cmd.Flags().Changed(logJSONFlag) {
		conf.LogJSON = logJSON
	}
	level, err := log.ParseLevel(conf.LogLevel)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	if conf.LogJSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{})
	}
	return conf, nil
}
