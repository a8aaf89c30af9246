package cli

import (
	"github.com/spf13/cobra"

	"github.com/amalmed/opstrack/internal/store"
)

// withStore opens the store for the duration of fn. Writers get the data
// directory lock and an error when the change could not be persisted.
func withStore(cmd *cobra.Command, a *App, write bool, fn func(s *store.Store) error) error {
	s, release, err := a.OpenStore(cmd.Context(), write)
	if err != nil {
		return err
	}
	defer release()

	if err := fn(s); err != nil {
		return err
	}
	if write {
		return saved(s)
	}
	return nil
}
