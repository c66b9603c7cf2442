package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/sensibo/internal/constants"
	"github.com/fivetwenty-io/sensibo/internal/logging"
	"github.com/fivetwenty-io/sensibo/pkg/sensibo"
	"github.com/fivetwenty-io/sensibo/pkg/sensiboclient"
)

// createClient builds a client from the configured API key and base URL.
func createClient() (sensibo.Client, error) {
	apiKey := viper.GetString(keyAPIKey)
	if apiKey == "" {
		return nil, constants.ErrNoAPIKeyConfigured
	}

	return createClientWithKey(apiKey)
}

func createClientWithKey(apiKey string) (sensibo.Client, error) {
	config := &sensibo.Config{
		APIKey:      apiKey,
		BaseURL:     viper.GetString(keyBaseURL),
		HTTPTimeout: constants.DefaultHTTPTimeout,
		UserAgent:   constants.DefaultUserAgent,
	}

	level := viper.GetString(keyLogLevel)
	if viper.GetBool(keyVerbose) {
		level = logging.DebugLevel
	}

	if level != "" {
		config.Logger = logging.New(level)
		config.Debug = level == logging.DebugLevel
	}

	return sensiboclient.New(config)
}

// withClient runs fn with a fresh client and closes it afterwards.
func withClient(cmd *cobra.Command, fn func(ctx context.Context, client sensibo.Client) error) error {
	client, err := createClient()
	if err != nil {
		return err
	}

	defer func() { _ = client.Close() }()

	return fn(commandContext(cmd), client)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

// outputFormat returns the validated --output value.
func outputFormat() (string, error) {
	output := viper.GetString(keyOutput)

	switch output {
	case "", constants.FormatTable:
		return constants.FormatTable, nil
	case constants.FormatJSON, constants.FormatYAML:
		return output, nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidOutput, output)
	}
}

// render writes value as JSON or YAML, or calls table for the table format.
func render(out io.Writer, value interface{}, table func(out io.Writer) error) error {
	output, err := outputFormat()
	if err != nil {
		return err
	}

	switch output {
	case constants.FormatJSON:
		return renderJSON(out, value)
	case constants.FormatYAML:
		return renderYAML(out, value)
	default:
		return table(out)
	}
}

func renderJSON(out io.Writer, value interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

func renderYAML(out io.Writer, value interface{}) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(constants.JSONIndentSize)

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return encoder.Close()
}

// renderTable renders rows below header.
func renderTable(out io.Writer, header []string, rows [][]string) error {
	headerCells := make([]any, len(header))
	for i, cell := range header {
		headerCells[i] = cell
	}

	table := tablewriter.NewWriter(out)
	table.Header(headerCells...)

	for _, row := range rows {
		_ = table.Append(row)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderObjectTable renders a JSON object as sorted Property/Value rows.
func renderObjectTable(out io.Writer, object map[string]interface{}) error {
	keys := make([]string, 0, len(object))
	for key := range object {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []string{key, formatValue(object[key])})
	}

	return renderTable(out, []string{"Property", "Value"}, rows)
}

// formatValue renders a JSON value for a table cell.
func formatValue(value interface{}) string {
	switch typed := value.(type) {
	case nil:
		return constants.NotAvailable
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return fmt.Sprint(typed)
		}

		return string(encoded)
	}
}

func formatFloat(value float64, ok bool) string {
	if !ok {
		return constants.NotAvailable
	}

	return strconv.FormatFloat(value, 'f', -1, 64)
}

func formatBool(value bool) string {
	if value {
		return constants.CheckMarkSymbol
	}

	return ""
}

// parseValue decodes raw as JSON when it is valid JSON and falls back to the
// raw string otherwise, so "24" is a number and "cool" a string.
func parseValue(raw string) interface{} {
	var value interface{}

	err := json.Unmarshal([]byte(raw), &value)
	if err != nil {
		return raw
	}

	return value
}

// maskSecret keeps a short prefix of secret visible.
func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}

	if len(secret) <= constants.SecretVisiblePrefix {
		return constants.MaskedSecret
	}

	return secret[:constants.SecretVisiblePrefix] + constants.MaskedSecret
}
