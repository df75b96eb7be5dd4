package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrjoshuak/htmlcase/internal/version"
)

func newVersionCmd() *cobra.Command {
	var full, asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(version.Get())
			case full:
				_, err := fmt.Fprintln(out, version.Full())
				return err
			default:
				_, err := fmt.Fprintf(out, "%s %s\n", version.Name, version.String())
				return err
			}
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "print build details")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")
	return cmd
}
