package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Keys written into the envelope meta block.
const (
	MetaCacheHit       = "cache_hit"
	MetaProcessingTime = "processing_time_ms"
)

const (
	responseMetaKey = "response_meta"
	requestStartKey = "request_start"
)

// WithResponseMeta opens the per-request meta map and remembers when the request started.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(requestStartKey, time.Now())
		c.Set(responseMetaKey, map[string]interface{}{})
		c.Next()
	}
}

// SetCacheHit records whether the payload was served from Redis.
func SetCacheHit(c *gin.Context, hit bool) {
	ensureMeta(c)[MetaCacheHit] = hit
}

// StampProcessingTime records the elapsed handler time. It must run before the
// response is written.
func StampProcessingTime(c *gin.Context) {
	var elapsed time.Duration
	if start, ok := c.Get(requestStartKey); ok {
		if t, ok := start.(time.Time); ok {
			elapsed = time.Since(t)
		}
	}
	ensureMeta(c)[MetaProcessingTime] = elapsed.Milliseconds()
}

// ExtractMeta returns the metadata map stored on the context, or nil.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	if meta, exists := c.Get(responseMetaKey); exists {
		if typed, ok := meta.(map[string]interface{}); ok {
			return typed
		}
	}
	return nil
}

func ensureMeta(c *gin.Context) map[string]interface{} {
	if meta := ExtractMeta(c); meta != nil {
		return meta
	}
	meta := make(map[string]interface{})
	if c != nil {
		c.Set(responseMetaKey, meta)
	}
	return meta
}
