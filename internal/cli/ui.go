package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/amalmed/opstrack/internal/config"
	"github.com/amalmed/opstrack/internal/persist"
	"github.com/amalmed/opstrack/internal/tui"
	"github.com/amalmed/opstrack/internal/version"
)

func newUICmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:         "ui",
		Short:       "Open the terminal UI (the default without arguments)",
		Long:        "Opens the full-screen terminal UI. The data directory is initialized on first use.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationFullScreen: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, a)
		},
	}
}

func runUI(cmd *cobra.Command, a *App) error {
	if !a.initialized() {
		if err := config.WriteDefault(a.cfg.DataDir, a.cfg); err != nil {
			return err
		}
		if err := a.Setup(cmd); err != nil {
			return err
		}
	}

	s, release, err := a.OpenStore(cmd.Context(), true)
	if errors.Is(err, persist.ErrLocked) {
		return fmt.Errorf("%w: another opstrack window or command is running", err)
	}
	if err != nil {
		return err
	}
	defer release()

	a.log.Info("ui started", zap.String("data_dir", a.cfg.DataDir), zap.Int("tasks", s.Len()))
	return tui.Run(tui.Options{
		Store:   s,
		DataDir: a.cfg.DataDir,
		Logger:  a.log.Named("tui"),
		Now:     a.now,
		Warning: s.Warning(),
		Version: version.Version,
	})
}

// RunUI opens the terminal UI with configuration from the environment and
// config file.
func RunUI() error {
	return executeArgs([]string{"ui"})
}
