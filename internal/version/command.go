package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AttachCobraVersionCommand gives an alarm-relay binary its `version` subcommand.
// The line is prefixed with the binary name so mixed logs stay readable.
func AttachCobraVersionCommand(root *cobra.Command) {
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show which alarm-relay release this binary is.",
		Long: `Prints the alarm-relay release, commit and build time, followed by the Go
toolchain and platform. Include this line when reporting a relay problem.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", root.Name(), Full())
		},
	})
}
