package middleware

import "github.com/gin-gonic/gin"

// CacheHeader reports whether a response was served from the cache.
const CacheHeader = "X-Cache"

// SetCacheHit marks the current response as a cache HIT or MISS. It must be
// called before the body is written.
func SetCacheHit(c *gin.Context, hit bool) {
	if c == nil {
		return
	}
	if hit {
		c.Header(CacheHeader, "HIT")
		return
	}
	c.Header(CacheHeader, "MISS")
}
