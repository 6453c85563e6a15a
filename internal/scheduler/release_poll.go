package scheduler

import (
	"context"
	"time"

	"github.com/gridpage/gridpage/internal/index"
	"github.com/gridpage/gridpage/internal/logger"
	"github.com/gridpage/gridpage/internal/release"
	redisstore "github.com/gridpage/gridpage/internal/store/redis"
	"github.com/gridpage/gridpage/internal/version"
)

// ReleasePoller periodically fetches the release feed and caches the
// most recent entry for the update indicator. Rolling builds (main,
// dev, nightly) never poll.
type ReleasePoller struct {
	checker  *release.Checker
	store    *redisstore.Store
	index    *index.MemoryIndex
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewReleasePoller creates a new release poller. store may be nil.
func NewReleasePoller(
	checker *release.Checker,
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
) *ReleasePoller {
	return &ReleasePoller{
		checker:  checker,
		store:    store,
		index:    idx,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic poll loop. For rolling builds it returns
// without starting anything.
func (rp *ReleasePoller) Start(ctx context.Context) error {
	if version.IsRolling(version.Version) {
		rp.logger.Info("rolling build, update check disabled",
			logger.String("version", version.Version))
		return nil
	}

	// Poll once on start so the first page render can already show
	// the indicator; failures here are background noise.
	rp.poll(ctx)

	ticker := time.NewTicker(rp.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rp.poll(ctx)
			case <-rp.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the poller.
func (rp *ReleasePoller) Stop() {
	close(rp.stopCh)
}

// poll fetches the feed once. Failures keep the cached entry.
func (rp *ReleasePoller) poll(ctx context.Context) {
	info, err := rp.checker.Latest(ctx)
	if err != nil {
		rp.logger.Debug("release feed poll failed, keeping cached entry",
			logger.Error(err))
		return
	}

	rp.index.UpdateRelease(info)
	rp.logger.Debug("release feed polled",
		logger.String("tag", info.TagName))

	if rp.store != nil {
		if err := rp.store.SaveRelease(ctx, info); err != nil {
			rp.logger.Warn("failed to cache release info in redis",
				logger.Error(err))
		}
	}
}
