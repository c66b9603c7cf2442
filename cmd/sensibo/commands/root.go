// Package commands implements the sensibo command-line interface.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/sensibo/internal/constants"
	"github.com/fivetwenty-io/sensibo/internal/logging"
)

// Viper keys shared by flags, environment and the config file.
const (
	keyConfig   = "config"
	keyAPIKey   = "api_key"
	keyBaseURL  = "base_url"
	keyOutput   = "output"
	keyVerbose  = "verbose"
	keyLogLevel = "log_level"
)

// BuildInfo is stamped at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand builds the command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sensibo",
		Short: "Sensibo API v2 CLI",
		Long: `A command-line interface for the Sensibo cloud API.

Lists pods, reads their measurements and AC state history, and changes AC
state properties using the API key from https://home.sensibo.com/me/api.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.sensibo/config.yml)")
	flags.StringP("api-key", "k", "", "Sensibo API key")
	flags.String("base-url", "", "API base URL")
	flags.StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	flags.BoolP("verbose", "v", false, "log HTTP requests and responses")
	flags.String("log-level", logging.InfoLevel, "log level (debug, info, warn, error)")

	_ = viper.BindPFlag(keyConfig, flags.Lookup("config"))
	_ = viper.BindPFlag(keyAPIKey, flags.Lookup("api-key"))
	_ = viper.BindPFlag(keyBaseURL, flags.Lookup("base-url"))
	_ = viper.BindPFlag(keyOutput, flags.Lookup("output"))
	_ = viper.BindPFlag(keyVerbose, flags.Lookup("verbose"))
	_ = viper.BindPFlag(keyLogLevel, flags.Lookup("log-level"))

	rootCmd.AddCommand(NewVersionCommand(info))
	rootCmd.AddCommand(NewLoginCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewPodsCommand())
	rootCmd.AddCommand(NewMeasurementsCommand())
	rootCmd.AddCommand(NewACStatesCommand())

	return rootCmd
}

// InitConfig wires the config file and SENSIBO_* environment into viper.
func InitConfig() {
	cfgFile := viper.GetString(keyConfig)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		viper.AddConfigPath(filepath.Join(home, constants.ConfigDirName))
		viper.SetConfigType(constants.ConfigFileType)
		viper.SetConfigName(constants.ConfigFileName)
	}

	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool(keyVerbose) {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}
