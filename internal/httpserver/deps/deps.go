package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gridpage/gridpage/internal/index"
	"github.com/gridpage/gridpage/internal/logger"
	"github.com/gridpage/gridpage/internal/web"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time   // for testing, defaults to time.Now
	AllowedHosts  []string           // Host headers allowed to hit /api/revalidate
	AllowedCIDRS  []string           // IPs allowed to hit /api/revalidate
	TrustProxy    bool               // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RedisClient   *redis.Client      // Redis client connection (nil in memory-only mode)
	MemoryIndex   *index.MemoryIndex // In-memory content snapshot
	Renderer      *web.Renderer      // Server-side page renderer
	ReloadTrigger chan struct{}      // Channel to trigger a manual content reload
}
