package commands

import (
	"io"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about the Sensibo CLI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			type VersionInfo struct {
				Version string `json:"version" yaml:"version"`
				Commit  string `json:"commit"  yaml:"commit"`
				Built   string `json:"built"   yaml:"built"`
			}

			versionInfo := VersionInfo{
				Version: info.Version,
				Commit:  info.Commit,
				Built:   info.Date,
			}

			return render(cmd.OutOrStdout(), versionInfo, func(out io.Writer) error {
				return renderTable(out, []string{"Property", "Value"}, [][]string{
					{"Version", info.Version},
					{"Commit", info.Commit},
					{"Built", info.Date},
				})
			})
		},
	}
}
