package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/sensibo/internal/constants"
)

// Config is the persisted CLI configuration.
type Config struct {
	APIKey   string `json:"api_key,omitempty"   yaml:"api_key,omitempty"`
	BaseURL  string `json:"base_url,omitempty"  yaml:"base_url,omitempty"`
	Output   string `json:"output,omitempty"    yaml:"output,omitempty"`
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
}

// configKeys lists the keys accepted by "config set" and "config unset".
var configKeys = []string{keyAPIKey, keyBaseURL, keyOutput, keyLogLevel}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the settings stored in the Sensibo CLI config file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration. The API key is masked.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			effective := map[string]string{
				keyAPIKey:   maskSecret(viper.GetString(keyAPIKey)),
				keyBaseURL:  viper.GetString(keyBaseURL),
				keyOutput:   viper.GetString(keyOutput),
				keyLogLevel: viper.GetString(keyLogLevel),
			}

			path, err := configFilePath()
			if err != nil {
				return err
			}

			effective["config_file"] = path

			return render(cmd.OutOrStdout(), effective, func(out io.Writer) error {
				rows := make([][]string, 0, len(configKeys)+1)
				for _, key := range append(configKeys, "config_file") {
					value := effective[key]
					if value == "" {
						value = constants.NotAvailable
					}

					rows = append(rows, []string{key, value})
				}

				return renderTable(out, []string{"Property", "Value"}, rows)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: " + strings.Join(configKeys, ", "),
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := normalizeConfigKey(args[0])
			value := args[1]

			config, err := loadConfig()
			if err != nil {
				return err
			}

			err = setConfigValue(config, key, value)
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			viper.Set(key, value)

			if key == keyAPIKey {
				value = maskSecret(value)
			}

			return outputConfigUpdateResult(cmd.OutOrStdout(), "Set", key, value)
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value from the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := normalizeConfigKey(args[0])

			config, err := loadConfig()
			if err != nil {
				return err
			}

			err = setConfigValue(config, key, "")
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			viper.Set(key, "")

			return outputConfigUpdateResult(cmd.OutOrStdout(), "Unset", key, "")
		},
	}
}

// normalizeConfigKey accepts flag spelling ("api-key") for config keys.
func normalizeConfigKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "-", "_")
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case keyAPIKey:
		config.APIKey = value
	case keyBaseURL:
		config.BaseURL = value
	case keyOutput:
		if value != "" && value != constants.FormatTable && value != constants.FormatJSON && value != constants.FormatYAML {
			return fmt.Errorf("%w: %q", constants.ErrInvalidOutput, value)
		}

		config.Output = value
	case keyLogLevel:
		config.LogLevel = value
	default:
		return fmt.Errorf("%w: %q (valid keys: %s)", constants.ErrUnknownConfigKey, key, strings.Join(configKeys, ", "))
	}

	return nil
}

// configFilePath returns the file viper read, or the default location.
func configFilePath() (string, error) {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, constants.ConfigDirName, constants.ConfigFileName+"."+constants.ConfigFileType), nil
}

// loadConfig reads the config file only, so values coming from flags or the
// environment are never written back.
func loadConfig() (*Config, error) {
	path, err := configFilePath()
	if err != nil {
		return nil, err
	}

	config := &Config{}

	// #nosec G304 -- the path is the CLI's own config file
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return config, nil
}

func saveConfigStruct(config *Config) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func outputConfigUpdateResult(out io.Writer, action, key, value string) error {
	result := map[string]string{
		"action": action,
		"key":    key,
	}

	if value != "" {
		result["value"] = value
	}

	return render(out, result, func(out io.Writer) error {
		if value == "" {
			_, err := fmt.Fprintf(out, "%s %s\n", action, key)

			return err
		}

		_, err := fmt.Fprintf(out, "%s %s = %s\n", action, key, value)

		return err
	})
}
