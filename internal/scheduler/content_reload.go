package scheduler

import (
	"context"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gridpage/gridpage/internal/buildhash"
	"github.com/gridpage/gridpage/internal/index"
	"github.com/gridpage/gridpage/internal/logger"
	"github.com/gridpage/gridpage/internal/sources/configdir"
	redisstore "github.com/gridpage/gridpage/internal/store/redis"
	"github.com/gridpage/gridpage/internal/utils"
	"github.com/gridpage/gridpage/internal/version"
)

// ContentReloader keeps the content snapshot in sync with the config
// directory. Reloads happen on a fixed interval, on a manual trigger
// (the /api/revalidate endpoint) and, when watching is enabled, on
// filesystem changes inside the directory.
type ContentReloader struct {
	dir           string
	loader        *configdir.Loader
	store         *redisstore.Store
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration
	watch         bool
	debounce      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewContentReloader creates a new content reloader. store may be nil
// (memory-only mode).
func NewContentReloader(
	dir string,
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	watch bool,
	debounce time.Duration,
	manualTrigger chan struct{},
) *ContentReloader {
	return &ContentReloader{
		dir:           dir,
		loader:        configdir.NewLoader(dir),
		store:         store,
		index:         idx,
		logger:        log,
		interval:      interval,
		watch:         watch,
		debounce:      debounce,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the content once, then begins the periodic reload loop
// and, if enabled, the filesystem watcher.
func (cr *ContentReloader) Start(ctx context.Context) error {
	// Load immediately on start. A broken config directory is not a
	// startup failure: the snapshot carries the diagnostics instead.
	cr.Reload(ctx)

	watchEvents := cr.startWatcher()

	ticker := time.NewTicker(cr.interval)
	go func() {
		defer ticker.Stop()

		var debounceCh <-chan time.Time
		var debounceTimer *time.Timer

		for {
			select {
			case <-ticker.C:
				cr.Reload(ctx)
			case <-cr.manualTrigger:
				cr.logger.Info("manual content reload triggered")
				cr.Reload(ctx)
			case <-watchEvents:
				// Editors fire bursts of events per save; wait for a
				// quiet period before reloading.
				if debounceTimer == nil {
					debounceTimer = time.NewTimer(cr.debounce)
				} else {
					debounceTimer.Reset(cr.debounce)
				}
				debounceCh = debounceTimer.C
			case <-debounceCh:
				debounceCh = nil
				cr.logger.Info("config directory changed, reloading")
				cr.Reload(ctx)
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader.
func (cr *ContentReloader) Stop() {
	close(cr.stopCh)
}

// startWatcher sets up the fsnotify watcher. Watch failures degrade to
// interval-only reloading.
func (cr *ContentReloader) startWatcher() <-chan struct{} {
	if !cr.watch {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		cr.logger.Warn("failed to create config watcher, falling back to interval reloads",
			logger.Error(err))
		return nil
	}
	if err := watcher.Add(cr.dir); err != nil {
		cr.logger.Warn("failed to watch config directory, falling back to interval reloads",
			logger.String("dir", cr.dir),
			logger.Error(err))
		_ = watcher.Close()
		return nil
	}

	events := make(chan struct{}, 1)
	go func() {
		defer utils.Close(watcher)
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isContentFile(ev.Name) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				select {
				case events <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				cr.logger.Warn("config watcher error", logger.Error(err))
			case <-cr.stopCh:
				return
			}
		}
	}()

	cr.logger.Info("watching config directory", logger.String("dir", cr.dir))
	return events
}

// isContentFile filters watcher noise down to the YAML files we load.
func isContentFile(path string) bool {
	return strings.HasSuffix(path, "settings.yaml") ||
		strings.HasSuffix(path, "services.yaml") ||
		strings.HasSuffix(path, "bookmarks.yaml") ||
		strings.HasSuffix(path, "widgets.yaml")
}

// Reload loads the config directory, recomputes the build hash and
// publishes the new snapshot.
func (cr *ContentReloader) Reload(ctx context.Context) {
	content := cr.loader.Load()

	snap := index.Snapshot{
		Settings:  content.Settings,
		Services:  content.Services,
		Bookmarks: content.Bookmarks,
		Widgets:   content.Widgets,
		Errors:    content.Errors,
		Hash:      buildhash.Compute(version.Version, content.Raw),
	}

	if len(content.Errors) > 0 {
		for _, ve := range content.Errors {
			cr.logger.Warn("configuration error",
				logger.String("config", ve.Config),
				logger.String("reason", ve.Reason))
		}
	}

	cr.index.UpdateSnapshot(snap)

	cr.logger.Info("content reloaded",
		logger.Int("service_groups", len(snap.Services)),
		logger.Int("bookmark_groups", len(snap.Bookmarks)),
		logger.Int("widgets", len(snap.Widgets)),
		logger.Int("errors", len(snap.Errors)),
		logger.String("hash", snap.Hash))

	// Mirror to Redis (best effort).
	if cr.store != nil {
		if err := cr.store.SaveSnapshot(ctx, snap); err != nil {
			cr.logger.Warn("failed to mirror snapshot to redis",
				logger.Error(err))
		}
	}
}
