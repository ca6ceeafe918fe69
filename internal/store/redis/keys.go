package redis

const (
	// KeyFavorites holds the encoded favorites array
	KeyFavorites = "pokedex:favorites"
	// ChannelFavorites carries change notifications between instances
	ChannelFavorites = "pokedex:favorites:changed"
	// KeyPrefixCache is the prefix for cached catalog responses
	KeyPrefixCache = "pokedex:cache:"
)

// CacheKey returns the Redis key for a cached response
func CacheKey(key string) string {
	return KeyPrefixCache + key
}
