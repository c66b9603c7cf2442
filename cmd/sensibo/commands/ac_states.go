package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/sensibo/internal/constants"
	"github.com/fivetwenty-io/sensibo/pkg/sensibo"
)

const defaultHistoryLimit = 5

// NewACStatesCommand creates the ac-states command group.
func NewACStatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ac-states",
		Aliases: []string{"ac-state", "ac"},
		Short:   "Read and change AC state",
		Long:    "List the AC state history of a pod, inspect one entry, or change a single property",
	}

	cmd.AddCommand(newACStatesListCommand())
	cmd.AddCommand(newACStatesGetCommand())
	cmd.AddCommand(newACStatesSetCommand())

	return cmd
}

func newACStatesListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "list POD_ID",
		Aliases: []string{"ls"},
		Short:   "List AC state history",
		Long:    "List the most recent AC state changes of a pod, newest first",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 {
				return fmt.Errorf("%w: %d", constants.ErrInvalidLimit, limit)
			}

			return withClient(cmd, func(ctx context.Context, client sensibo.Client) error {
				logs, err := client.GetACStates(ctx, args[0], limit)
				if err != nil {
					return err
				}

				return render(cmd.OutOrStdout(), logs, func(out io.Writer) error {
					return renderACStateLogsTable(out, logs)
				})
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", defaultHistoryLimit, "number of entries to return")

	return cmd
}

func newACStatesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get POD_ID LOG_ID",
		Short: "Get an AC state log entry",
		Long:  "Display a single entry of the AC state history",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client sensibo.Client) error {
				entry, err := client.GetACStateLog(ctx, args[0], args[1])
				if err != nil {
					return err
				}

				return render(cmd.OutOrStdout(), entry, func(out io.Writer) error {
					return renderObjectTable(out, entry)
				})
			})
		},
	}
}

func newACStatesSetCommand() *cobra.Command {
	var currentState string

	cmd := &cobra.Command{
		Use:   "set POD_ID PROPERTY VALUE",
		Short: "Change one AC state property",
		Long: `Change a single AC state property such as on, mode or targetTemperature.

VALUE is sent as JSON when it parses as JSON (24, true, "auto") and as a plain
string otherwise. Without --current-state the newest history entry is used as
the baseline state.`,
		Example: `  sensibo ac-states set abc123 targetTemperature 24
  sensibo ac-states set abc123 on false
  sensibo ac-states set abc123 mode cool --current-state '{"on":true,"mode":"heat"}'`,
		Args: cobra.ExactArgs(constants.SetPropertyArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := parseCurrentState(currentState)
			if err != nil {
				return err
			}

			return withClient(cmd, func(ctx context.Context, client sensibo.Client) error {
				result, err := client.SetACStateProperty(ctx, args[0], args[1], parseValue(args[2]), state)
				if err != nil {
					return err
				}

				return render(cmd.OutOrStdout(), result, func(out io.Writer) error {
					if object, ok := result.(map[string]interface{}); ok {
						return renderObjectTable(out, object)
					}

					_, err := fmt.Fprintln(out, formatValue(result))

					return err
				})
			})
		},
	}

	cmd.Flags().StringVar(&currentState, "current-state", "", "baseline AC state as a JSON object")

	return cmd
}

// parseCurrentState decodes the --current-state flag. Empty means nil.
func parseCurrentState(raw string) (sensibo.ACState, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil //nolint:nilnil // no baseline means fetch the newest one
	}

	var state sensibo.ACState

	err := json.Unmarshal([]byte(raw), &state)
	if err != nil || state == nil {
		return nil, fmt.Errorf("%w: %q", constants.ErrInvalidCurrentState, raw)
	}

	return state, nil
}

func renderACStateLogsTable(out io.Writer, logs []sensibo.ACStateLog) error {
	rows := make([][]string, 0, len(logs))

	for _, entry := range logs {
		changedAt := constants.NotAvailable
		if ts := entry.Time(); !ts.IsZero() {
			changedAt = ts.Format(time.RFC3339)
		}

		rows = append(rows, []string{
			entry.ID(),
			changedAt,
			entry.Status(),
			entry.Reason(),
			strings.Join(entry.ChangedProperties(), ", "),
		})
	}

	return renderTable(out, []string{"ID", "Time", "Status", "Reason", "Changed"}, rows)
}
