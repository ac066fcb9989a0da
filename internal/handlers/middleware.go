package handlers

import (
	"net/http"
	"time"

	"github.com/marcodesign21/chaset-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader   = "X-Request-ID"
	requestIDKey      = "requestID"
	vaultNoticeHeader = "X-Vault-Notice"
)

// requestLogger tags each request with an id and logs it once it completes.
func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		rid := c.GetHeader(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Header(requestIDHeader, rid)

		c.Next()

		h.log.Infow("http_request",
			"request_id", rid,
			"method", c.Request.Method,
			"route", c.FullPath(),
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// cors allows browser clients served from origin ("*" when empty).
func cors(origin string) gin.HandlerFunc {
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		hdr := c.Writer.Header()
		hdr.Set("Access-Control-Allow-Origin", origin)
		hdr.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		hdr.Set("Access-Control-Allow-Headers", "Content-Type, "+requestIDHeader)
		hdr.Set("Access-Control-Expose-Headers", requestIDHeader+", "+vaultNoticeHeader+", Content-Disposition")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// vaultNotice attaches the plaintext-storage disclosure to every vault reply.
func vaultNotice(c *gin.Context) {
	c.Header(vaultNoticeHeader, models.VaultNotice)
	c.Next()
}
