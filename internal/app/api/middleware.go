package api

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/gin-gonic/gin"

	"product-catalog/internal/auth"
	"product-catalog/internal/shared/logger"
)

const identityKey = "caller_identity"

// RequestID extracts or generates a request id and threads it through the
// request context so every log line of the request carries it.
func RequestID(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = randID()
		}
		c.Request = c.Request.WithContext(log.WithRequestID(c.Request.Context(), rid))
		c.Next()
	}
}

// Identity resolves the caller from the Authorization header and stores it on
// the gin context. An unparseable or absent token yields the anonymous
// identity; denial is each operation's job, not the middleware's.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(identityKey, auth.FromAuthorizationHeader(c.GetHeader("Authorization")))
		c.Next()
	}
}

// callerFrom returns the identity placed by the Identity middleware.
func callerFrom(c *gin.Context) auth.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(auth.Identity); ok {
			return id
		}
	}
	return auth.Identity{}
}

// randID generates a random 24-char hex string suitable for request IDs.
func randID() string {
	var b [12]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
