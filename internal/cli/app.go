package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/amalmed/opstrack/internal/config"
	"github.com/amalmed/opstrack/internal/logger"
	"github.com/amalmed/opstrack/internal/persist"
	"github.com/amalmed/opstrack/internal/store"
)

const annotationFullScreen = "fullscreen"

// App carries the resolved configuration and logger shared by every command.
type App struct {
	v      *viper.Viper
	cfg    *config.Config
	log    *zap.Logger
	closer io.Closer
	now    func() time.Time
}

// NewApp returns an App with default settings. Setup must run before use.
func NewApp() *App {
	return &App{v: config.New(), log: zap.NewNop(), now: time.Now}
}

func (a *App) bindFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	bind := func(key, flag string) {
		// Unset flags fall through to environment, file and defaults.
		a.v.BindPFlag(key, flags.Lookup(flag))
	}
	bind("data_dir", "data-dir")
	bind("backend", "backend")
	bind("actor", "actor")
	bind("log.level", "log-level")
}

// Setup resolves configuration and, once the data directory is initialized,
// opens the log file. It may run again after init creates the directory.
func (a *App) Setup(cmd *cobra.Command) error {
	if a.closer != nil {
		a.Close()
		a.closer = nil
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if !a.initialized() {
		return nil
	}
	opts := logger.Options{
		Level:      cfg.Log.Level,
		File:       cfg.LogFile(),
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	}
	// Full-screen commands own the terminal; they log to the file only.
	if cmd.Annotations[annotationFullScreen] == "" {
		opts.Stderr = cmd.ErrOrStderr()
	}
	log, closer, err := logger.New(opts)
	if err != nil {
		return err
	}
	a.log = log.Named("cli")
	a.closer = closer
	a.log.Debug("command started", zap.String("command", cmd.CommandPath()))
	return nil
}

// Close flushes and closes the log file.
func (a *App) Close() error {
	a.log.Sync()
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

// Config returns the resolved configuration.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Logger returns the root logger.
func (a *App) Logger() *zap.Logger {
	return a.log
}

func (a *App) initialized() bool {
	_, err := os.Stat(config.Path(a.cfg.DataDir))
	return err == nil
}

func (a *App) requireInitialized() error {
	if !a.initialized() {
		return fmt.Errorf("opstrack is not initialized in %s. Run 'opstrack init' first", a.cfg.DataDir)
	}
	return nil
}

// OpenStore opens the configured backend and loads the collection. Writers
// hold the data directory lock until release.
func (a *App) OpenStore(ctx context.Context, write bool) (*store.Store, func(), error) {
	if err := a.requireInitialized(); err != nil {
		return nil, nil, err
	}

	var lock *persist.DataLock
	if write {
		lock = persist.NewDataLock(a.cfg.DataDir)
		if err := lock.Acquire(); err != nil {
			return nil, nil, err
		}
	}
	releaseLock := func() {
		if lock != nil {
			if err := lock.Release(); err != nil {
				a.log.Warn("failed to release lock", zap.Error(err))
			}
		}
	}

	plog := a.log.Named("persist")
	kv, err := persist.Open(a.cfg.Backend, a.cfg.DataDir, plog)
	if err != nil {
		releaseLock()
		return nil, nil, err
	}
	gw := persist.NewGateway(kv, plog, a.now)

	s, res, err := store.Open(ctx, gw, store.Options{
		Actor:  a.cfg.Actor,
		Now:    a.now,
		Logger: a.log.Named("store"),
	})
	if err != nil {
		gw.Close()
		releaseLock()
		return nil, nil, err
	}
	if res.Warning != nil {
		a.log.Warn("saved data was unreadable; started from the seed list", zap.Error(res.Warning))
	}

	journal := store.NewJournal(a.cfg.DataDir)
	detach := journal.Attach(s, func(err error) {
		a.log.Warn("failed to write activity journal", zap.Error(err))
	})

	release := func() {
		detach()
		if err := gw.Close(); err != nil {
			a.log.Warn("failed to close storage", zap.Error(err))
		}
		releaseLock()
	}
	return s, release, nil
}

// saved reports a persistence failure after a mutation. The CLI exits right
// after, so a change kept only in memory is lost.
func saved(s *store.Store) error {
	if err := s.Warning(); err != nil && s.MemoryOnly() {
		return fmt.Errorf("change was not saved: %w", err)
	}
	return nil
}
