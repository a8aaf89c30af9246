package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amalmed/opstrack/internal/config"
)

func newInitCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the opstrack data directory",
		Long:  "Creates the data directory and writes a default config.yaml.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, a)
		},
	}
}

func runInit(cmd *cobra.Command, a *App) error {
	dir := a.cfg.DataDir
	if a.initialized() {
		return fmt.Errorf("opstrack is already initialized in %s", dir)
	}

	if err := config.WriteDefault(dir, a.cfg); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Initialized opstrack in", dir)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Set your name for the audit log in", config.Path(dir))
	fmt.Fprintln(out, "  2. Run: opstrack list")
	fmt.Fprintln(out, "  3. Or run opstrack with no arguments for the terminal UI")
	return nil
}
