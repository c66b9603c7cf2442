package commands

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/sensibo/internal/constants"
	"github.com/fivetwenty-io/sensibo/pkg/sensibo"
)

// NewMeasurementsCommand creates the measurements command.
func NewMeasurementsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "measurements POD_ID",
		Aliases: []string{"measure", "m"},
		Short:   "Show the latest sensor reading",
		Long:    "Display the most recent temperature, humidity and battery reading of a pod",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client sensibo.Client) error {
				measurement, err := client.GetMeasurements(ctx, args[0])
				if err != nil {
					return err
				}

				return render(cmd.OutOrStdout(), measurement, func(out io.Writer) error {
					return renderMeasurementTable(out, measurement)
				})
			})
		},
	}
}

func renderMeasurementTable(out io.Writer, measurement sensibo.Measurement) error {
	measuredAt := constants.NotAvailable
	if ts := measurement.Time(); !ts.IsZero() {
		measuredAt = ts.Format(time.RFC3339)
	}

	return renderTable(out, []string{"Property", "Value"}, [][]string{
		{"Temperature", formatFloat(measurement.Temperature())},
		{"Humidity", formatFloat(measurement.Humidity())},
		{"Battery Voltage", formatFloat(measurement.BatteryVoltage())},
		{"Time", measuredAt},
	})
}
