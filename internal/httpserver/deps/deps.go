package deps

import (
	"time"

	"github.com/MrSnakeDoc/pokedex/internal/browse"
	"github.com/MrSnakeDoc/pokedex/internal/logger"
	"github.com/MrSnakeDoc/pokedex/internal/metrics"
	"github.com/MrSnakeDoc/pokedex/internal/querycache"
	redisstore "github.com/MrSnakeDoc/pokedex/internal/store/redis"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	AllowedHosts       []string // Host headers allowed to reach the API
	AllowedCIDRS       []string // IPs allowed to reach ops endpoints
	TrustProxy         bool     // true behind a trusted reverse proxy (e.g. cloudflared)
	RateLimitBurst     int
	RateLimitPerMinute int

	Browse        *browse.Service
	Cache         *querycache.Cache
	Redis         *redisstore.Store // nil when favorites are not kept in redis
	Metrics       *metrics.Metrics
	CatalogURL    string
	SeedFile      string        // favorites seed file, empty when none
	ReloadTrigger chan struct{} // manual reload (cache flush + seed import)
}
