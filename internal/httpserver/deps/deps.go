package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/playgate/playgate/internal/endpoint"
	"github.com/playgate/playgate/internal/logger"
	"github.com/playgate/playgate/internal/oauth"
	"github.com/playgate/playgate/internal/sources/platform"
	redisstore "github.com/playgate/playgate/internal/store/redis"
)

type Deps struct {
	Logger          logger.Logger
	StartTime       time.Time
	Version         string
	Commit          string
	BuildDate       string
	GoVersion       string
	TimeNow         func() time.Time   // for testing, defaults to time.Now
	AllowedCIDRS    []string           // IPs allowed to access ops endpoints
	AllowedOrigins  []string           // browser origins allowed by CORS (the SPA)
	TrustProxy      bool               // true if running behind a trusted reverse proxy
	RedisClient     *redis.Client      // Redis client connection
	Store           *redisstore.Store  // sessions, OAuth state, response cache
	Resolver        *endpoint.Resolver // logical operation -> base URL
	Games           *platform.Service  // layered fetch aggregator
	OAuth           *oauth.Service     // authorization code flow
	SessionTTL      time.Duration      // browser session lifetime
	CacheTTL        time.Duration      // aggregated response cache TTL
	CookieSecure    bool               // Secure flag on the session cookie
	DefaultPageSize int                // page size when the frontend does not ask
	MaxPageSize     int                // hard cap on requested page size
}
