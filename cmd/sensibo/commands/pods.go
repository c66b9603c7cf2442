package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/sensibo/internal/constants"
	"github.com/fivetwenty-io/sensibo/pkg/sensibo"
)

// NewPodsCommand creates the pods command group.
func NewPodsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pods",
		Aliases: []string{"pod", "devices"},
		Short:   "Inspect pods",
		Long:    "List the pods of the account and show their details",
	}

	cmd.AddCommand(newPodsListCommand())
	cmd.AddCommand(newPodsGetCommand())

	return cmd
}

func newPodsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List pods",
		Long:    "List every pod of the account with its room and current AC state",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client sensibo.Client) error {
				devices, err := client.ListDevices(ctx)
				if err != nil {
					return err
				}

				return render(cmd.OutOrStdout(), devices, func(out io.Writer) error {
					return renderDevicesTable(out, devices)
				})
			})
		},
	}
}

func newPodsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get POD_ID",
		Short: "Get pod details",
		Long:  "Display every attribute of a single pod",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client sensibo.Client) error {
				device, err := client.GetDevice(ctx, args[0])
				if err != nil {
					return err
				}

				return render(cmd.OutOrStdout(), device, func(out io.Writer) error {
					return renderObjectTable(out, device)
				})
			})
		},
	}
}

func renderDevicesTable(out io.Writer, devices []sensibo.Device) error {
	rows := make([][]string, 0, len(devices))

	for _, device := range devices {
		state := device.ACState()

		power := constants.NotAvailable
		if state != nil {
			power = "off"
			if state.On() {
				power = "on"
			}
		}

		target, ok := state.TargetTemperature()

		rows = append(rows, []string{
			device.ID(),
			device.RoomName(),
			formatBool(device.Connected()),
			formatBool(device.IsBatteryLow()),
			power,
			state.Mode(),
			formatFloat(target, ok),
		})
	}

	return renderTable(out, []string{"ID", "Room", "Connected", "Battery Low", "Power", "Mode", "Target"}, rows)
}
