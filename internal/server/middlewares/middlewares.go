package middlewares

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDKey = "request_id"

// Logger logs every request twice: once on arrival at debug level and once
// on completion with status and latency. Both lines carry the same
// generated request id so they can be correlated.
func Logger() gin.HandlerFunc {
	log := zap.S().Named("http")

	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Set(RequestIDKey, requestID)

		log.Debugw("request started",
			"id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"ip", c.ClientIP(),
			"user-agent", c.Request.UserAgent(),
		)

		c.Next()

		log.Infow("request completed",
			"id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)

		for _, err := range c.Errors.Errors() {
			log.Errorw("request error", "id", requestID, "error", err)
		}
	}
}

// Auth validates a bearer JWT signed with the shared HMAC secret. It guards
// the lifecycle mutation routes; read endpoints stay open.
func Auth(secret string) gin.HandlerFunc {
	log := zap.S().Named("auth")

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, prefix), func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			log.Debugw("rejected bearer token", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid bearer token"})
			return
		}

		c.Next()
	}
}
