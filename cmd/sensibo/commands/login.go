package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/sensibo/internal/constants"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Store an API key",
		Long: `Validate an API key against the Sensibo API and store it in the config file.

The key is taken from --api-key, or read from the terminal without echo.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			apiKey := ""
			if flag := cmd.Flag("api-key"); flag != nil && flag.Changed {
				apiKey = flag.Value.String()
			}

			if apiKey == "" {
				var err error

				apiKey, err = readAPIKey(cmd.InOrStdin(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
			}

			apiKey = strings.TrimSpace(apiKey)
			if apiKey == "" {
				return constants.ErrEmptyAPIKey
			}

			pods, err := validateAPIKey(commandContext(cmd), apiKey)
			if err != nil {
				return err
			}

			config, err := loadConfig()
			if err != nil {
				return err
			}

			config.APIKey = apiKey

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			viper.Set(keyAPIKey, apiKey)

			result := map[string]interface{}{
				"logged_in": true,
				"pods":      pods,
			}

			return render(cmd.OutOrStdout(), result, func(out io.Writer) error {
				_, err := fmt.Fprintf(out, "Logged in. %d pods available.\n", pods)

				return err
			})
		},
	}
}

// readAPIKey prompts without echo on a terminal and reads a line otherwise.
func readAPIKey(in io.Reader, prompt io.Writer) (string, error) {
	_, _ = fmt.Fprint(prompt, "API key: ")

	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		key, err := term.ReadPassword(int(file.Fd()))
		_, _ = fmt.Fprintln(prompt)

		if err != nil {
			return "", fmt.Errorf("failed to read API key: %w", err)
		}

		return string(key), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}

	return line, nil
}

// validateAPIKey lists the account's pods with apiKey and returns their count.
func validateAPIKey(ctx context.Context, apiKey string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ShortHTTPTimeout)
	defer cancel()

	client, err := createClientWithKey(apiKey)
	if err != nil {
		return 0, err
	}

	defer func() { _ = client.Close() }()

	devices, err := client.ListDevices(ctx)
	if err != nil {
		return 0, fmt.Errorf("validating API key: %w", err)
	}

	return len(devices), nil
}
