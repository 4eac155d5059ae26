package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"github.com/tablehead/abkins/kinematics"
	"github.com/tablehead/abkins/logging"
	"github.com/tablehead/abkins/utils"
)

// DefaultReloadDelay is how long the watcher waits for a burst of file events to settle before
// re-reading the config.
const DefaultReloadDelay = 100 * time.Millisecond

// Watcher re-reads a config file whenever it changes and publishes the calibration values edited in
// the file into a store. Values the file does not change, including ones set through the parameter
// registry since, are left alone. A file that fails to read or validate is logged and the previous
// calibration is kept.
type Watcher struct {
	path   string
	store  *kinematics.CalibrationStore
	logger logging.Logger

	mu      sync.Mutex
	applied CalibrationConfig

	fsWatcher *fsnotify.Watcher
	debounced func(func())
	closed    atomic.Bool
	reloads   atomic.Int64

	workers utils.StoppableWorkers
}

// NewWatcher returns a watcher for the config at path. The calibration currently in the file is taken
// as already published, so only later edits reach the store. Nothing is watched until Start is called.
func NewWatcher(path string, store *kinematics.CalibrationStore, logger logging.Logger) (*Watcher, error) {
	return newWatcher(path, store, logger, DefaultReloadDelay)
}

func newWatcher(path string, store *kinematics.CalibrationStore, logger logging.Logger, delay time.Duration) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create file watcher")
	}
	// Watch the directory so that editors which replace the file on save are still seen.
	if err := fsWatcher.Add(filepath.Dir(absPath)); err != nil {
		return nil, multierr.Combine(errors.Wrapf(err, "failed to watch %q", absPath), fsWatcher.Close())
	}
	w := &Watcher{
		path:      absPath,
		store:     store,
		logger:    logger,
		fsWatcher: fsWatcher,
		debounced: debounce.New(delay),
	}
	if cfg, err := Read(context.Background(), absPath, logger); err == nil {
		w.applied = cfg.Calibration
	} else {
		logger.Debugw("no calibration baseline, the first reload publishes every value in the file",
			"path", absPath, "error", err)
	}
	return w, nil
}

// Start watches the file in the background until ctx is done or Close is called.
func (w *Watcher) Start(ctx context.Context) {
	w.workers = utils.NewStoppableWorkersWithContext(ctx, w.watch)
}

func (w *Watcher) watch(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debugw("config file changed", "path", w.path, "op", event.Op.String())
			w.debounced(func() {
				if w.closed.Load() || ctx.Err() != nil {
					return
				}
				//nolint:errcheck
				_ = w.Reload(ctx)
			})
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warnw("error watching config file", "path", w.path, "error", err)
		}
	}
}

// Reload re-reads the config file and publishes the calibration values that changed in it since the
// last reload. On error the current calibration is left in place and the error is returned.
func (w *Watcher) Reload(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	cfg, err := Read(ctx, w.path, w.logger)
	if err != nil {
		w.logger.Errorw("failed to reload config, keeping previous calibration",
			"path", w.path, "error", err, "calibration", w.store.Snapshot().String())
		return err
	}
	changed := cfg.Calibration.changedSince(w.applied)
	w.applied = cfg.Calibration

	var old kinematics.Calibration
	cal := w.store.Update(func(c *kinematics.Calibration) {
		old = *c
		changed.applyTo(c)
	})
	w.reloads.Inc()
	w.logger.Infow("published calibration", "path", w.path, "old", old.String(), "new", cal.String())
	return nil
}

// Reloads returns how many times a calibration has been published by this watcher.
func (w *Watcher) Reloads() int64 {
	return w.reloads.Load()
}

// Close stops watching. Pending reloads are dropped.
func (w *Watcher) Close() error {
	if !w.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := w.fsWatcher.Close()
	if w.workers != nil {
		w.workers.Stop()
	}
	return err
}
