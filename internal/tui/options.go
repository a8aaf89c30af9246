package tui

import (
	"time"

	"go.uber.org/zap"

	"github.com/amalmed/opstrack/internal/store"
)

// Options configures TUI startup behavior.
type Options struct {
	Store *store.Store
	// DataDir receives CSV exports under exports/.
	DataDir string
	Logger  *zap.Logger
	Now     func() time.Time
	// Warning is shown at startup, e.g. when saved data was unreadable.
	Warning error
	Version string
}
