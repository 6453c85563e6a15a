package scheduler

import (
	"context"

	"github.com/gridpage/gridpage/internal/index"
	"github.com/gridpage/gridpage/internal/logger"
	redisstore "github.com/gridpage/gridpage/internal/store/redis"
)

// RedisSyncer restores the mirrored snapshot and release cache from
// Redis into memory on startup, so a restart with a broken config
// directory still serves the last good content.
type RedisSyncer struct {
	store  *redisstore.Store
	index  *index.MemoryIndex
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer.
func NewRedisSyncer(
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		index:  idx,
		logger: log,
	}
}

// Sync loads the mirrored state from Redis into the memory index.
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("syncing cached content from redis to memory")

	snap, err := rs.store.LoadSnapshot(ctx)
	if err != nil {
		return err
	}
	if snap == nil {
		rs.logger.Info("no cached snapshot found in redis")
	} else {
		rs.index.UpdateSnapshot(*snap)
		rs.logger.Info("restored snapshot from redis",
			logger.Int("service_groups", len(snap.Services)),
			logger.String("hash", snap.Hash))
	}

	info, err := rs.store.LoadRelease(ctx)
	if err != nil {
		return err
	}
	if info != nil {
		rs.index.UpdateRelease(info)
		rs.logger.Info("restored release info from redis",
			logger.String("tag", info.TagName))
	}

	return nil
}
