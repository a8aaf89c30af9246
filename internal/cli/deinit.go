package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amalmed/opstrack/internal/persist"
)

func newDeinitCmd(a *App) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "deinit",
		Short: "Remove the opstrack data directory",
		Long:  "Removes the data directory with every task, the activity journal and logs. This action cannot be undone.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeinit(cmd, a, force)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	return cmd
}

func runDeinit(cmd *cobra.Command, a *App, force bool) error {
	dir := a.cfg.DataDir
	if err := a.requireInitialized(); err != nil {
		return err
	}

	locked, err := persist.NewDataLock(dir).IsLocked()
	if err != nil {
		return err
	}
	if locked {
		return fmt.Errorf("opstrack is in use by another process; close it first")
	}

	fileCount, totalSize, err := calculateDirStats(dir)
	if err != nil {
		return fmt.Errorf("failed to analyze %s: %w", dir, err)
	}

	if !force {
		prompt := fmt.Sprintf("This will delete %s (%d files, %s).", dir, fileCount, formatSize(totalSize))
		if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	// The log file lives inside the directory being removed.
	a.Close()
	a.closer = nil

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", dir, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "opstrack data has been removed.")
	return nil
}

// confirm asks a yes/no question; anything but y or yes is no.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s Continue? [y/N] ", prompt)

	reader := bufio.NewReader(in)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))

	return response == "y" || response == "yes"
}

func calculateDirStats(dir string) (fileCount int, totalSize int64, err error) {
	err = filepath.Walk(dir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !info.IsDir() {
			fileCount++
			totalSize += info.Size()
		}
		return nil
	})
	return
}

func formatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1fMB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1fKB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}
