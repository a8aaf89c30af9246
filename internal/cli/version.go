package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amalmed/opstrack/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Version works before init, so skip config and logging.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "opstrack %s\n", version.Version)
			fmt.Fprintf(out, "commit: %s\n", version.CommitSHA)
			fmt.Fprintf(out, "built:  %s\n", version.BuildDate)
		},
	}
}
