package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gridpage/gridpage/internal/domain"
	"github.com/gridpage/gridpage/internal/index"
)

const (
	// DefaultSnapshotTTL bounds how long a mirrored snapshot survives
	// without a successful reload refreshing it.
	DefaultSnapshotTTL = 7 * 24 * time.Hour
	// DefaultReleaseTTL bounds how long a cached release entry is
	// trusted without a successful feed poll.
	DefaultReleaseTTL = 24 * time.Hour
)

// Store mirrors the in-memory content snapshot and the release cache
// into Redis. The memory index stays the primary source; every
// operation here is best effort.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// SaveSnapshot mirrors a content snapshot into Redis.
func (s *Store) SaveSnapshot(ctx context.Context, snap index.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := s.client.Set(ctx, KeySnapshot, data, DefaultSnapshotTTL).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot retrieves the mirrored content snapshot.
// A missing key returns (nil, nil): nothing cached yet.
func (s *Store) LoadSnapshot(ctx context.Context) (*index.Snapshot, error) {
	data, err := s.client.Get(ctx, KeySnapshot).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snap index.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// SaveRelease caches the latest release feed entry.
func (s *Store) SaveRelease(ctx context.Context, info *domain.ReleaseInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal release info: %w", err)
	}

	if err := s.client.Set(ctx, KeyRelease, data, DefaultReleaseTTL).Err(); err != nil {
		return fmt.Errorf("failed to save release info: %w", err)
	}
	return nil
}

// LoadRelease retrieves the cached release feed entry.
// A missing key returns (nil, nil).
func (s *Store) LoadRelease(ctx context.Context) (*domain.ReleaseInfo, error) {
	data, err := s.client.Get(ctx, KeyRelease).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load release info: %w", err)
	}

	var info domain.ReleaseInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to unmarshal release info: %w", err)
	}
	return &info, nil
}
