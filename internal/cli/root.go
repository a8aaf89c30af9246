package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/amalmed/opstrack/internal/version"
)

// NewRootCmd builds the command tree around a.
func NewRootCmd(a *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "opstrack",
		Short: "Task and purchase request tracker for Al-Amal medical operations",
		Long: `opstrack tracks administrative tasks and purchase requests for a medical facility.
Run without arguments to open the terminal UI.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.Setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("data-dir", "", "Data directory (default $HOME/.opstrack)")
	flags.String("backend", "", "Storage backend: file, sqlite or memory")
	flags.String("actor", "", "Name recorded in audit log entries")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	a.bindFlags(rootCmd)

	rootCmd.AddCommand(
		newInitCmd(a),
		newDeinitCmd(a),
		newAddCmd(a),
		newPurchaseCmd(a),
		newEditCmd(a),
		newRmCmd(a),
		newStatusCmd(a),
		newProgressCmd(a),
		newCheckCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newStatsCmd(a),
		newCalendarCmd(a),
		newExportCmd(a),
		newPrintCmd(a),
		newActivityCmd(a),
		newUICmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the command line.
func Execute() error {
	return executeArgs(os.Args[1:])
}

func executeArgs(args []string) error {
	a := NewApp()
	defer a.Close()
	root := NewRootCmd(a)
	root.SetIn(os.Stdin)
	root.SetArgs(args)
	return root.Execute()
}
