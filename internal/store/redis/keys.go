package redis

const (
	// KeyPrefixSession is the prefix for browser session keys
	KeyPrefixSession = "playgate:session:"
	// KeyPrefixState is the prefix for pending OAuth state keys
	KeyPrefixState = "playgate:state:"
	// KeyPrefixCache is the prefix for cached aggregated responses
	KeyPrefixCache = "playgate:cache:"
)

// SessionKey returns the Redis key for a session by its opaque id
func SessionKey(id string) string {
	return KeyPrefixSession + id
}

// StateKey returns the Redis key for a pending OAuth state value
func StateKey(state string) string {
	return KeyPrefixState + state
}

// CacheKey returns the Redis key for a cached query response
func CacheKey(kind, query string) string {
	return KeyPrefixCache + kind + ":" + query
}
