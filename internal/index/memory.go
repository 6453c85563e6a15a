package index

import (
	"sync"
	"time"

	"github.com/gridpage/gridpage/internal/domain"
)

// Snapshot is the immutable result of one content reload.
type Snapshot struct {
	Settings  domain.Settings
	Services  []domain.ServiceGroup
	Bookmarks []domain.BookmarkGroup
	Widgets   []domain.Widget
	Errors    []domain.ValidationError
	Hash      string
}

// MemoryIndex holds the current content snapshot plus the latest
// release info. Snapshots are replaced atomically: readers never
// observe a half-applied reload.
type MemoryIndex struct {
	mu                sync.RWMutex
	snapshot          Snapshot
	release           *domain.ReleaseInfo
	lastReload        time.Time
	lastReleaseUpdate time.Time
}

// NewMemoryIndex creates an empty memory index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{}
}

// UpdateSnapshot replaces the content snapshot.
func (idx *MemoryIndex) UpdateSnapshot(s Snapshot) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.snapshot = s
	idx.lastReload = time.Now()
}

// Snapshot returns the current content snapshot.
func (idx *MemoryIndex) Snapshot() Snapshot {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.snapshot
}

// Settings returns the current settings.
func (idx *MemoryIndex) Settings() domain.Settings {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.snapshot.Settings
}

// Hash returns the current build hash.
func (idx *MemoryIndex) Hash() string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.snapshot.Hash
}

// Errors returns the current validation errors.
func (idx *MemoryIndex) Errors() []domain.ValidationError {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.snapshot.Errors
}

// GetLastReload returns the timestamp of the last snapshot update.
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}

// GroupCounts reports how many service and bookmark groups are loaded.
func (idx *MemoryIndex) GroupCounts() (services, bookmarks int) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.snapshot.Services), len(idx.snapshot.Bookmarks)
}

// ─────────────────────────────────────────────────────────────────
// Release info
// ─────────────────────────────────────────────────────────────────

// UpdateRelease stores the latest release feed entry.
func (idx *MemoryIndex) UpdateRelease(r *domain.ReleaseInfo) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.release = r
	idx.lastReleaseUpdate = time.Now()
}

// Release returns the cached release feed entry, if any.
func (idx *MemoryIndex) Release() *domain.ReleaseInfo {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.release
}

// GetLastReleaseUpdate returns the timestamp of the last release poll.
func (idx *MemoryIndex) GetLastReleaseUpdate() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReleaseUpdate
}
