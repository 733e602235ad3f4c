package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"catalog-app/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogMiddleware records every request and its outcome. JSON bodies
// are logged verbatim, multipart uploads only by size.
func RequestLogMiddleware(log *logger.Logger) gin.HandlerFunc {
	reqLog := log.With("component", "http")
	return func(c *gin.Context) {
		start := time.Now()

		if c.Request.Method == http.MethodPost ||
			c.Request.Method == http.MethodPut ||
			c.Request.Method == http.MethodPatch {
			contentType := c.GetHeader("Content-Type")
			if strings.Contains(contentType, "multipart/form-data") {
				reqLog.Info("request",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"body_bytes", c.Request.ContentLength)
			} else {
				body, err := io.ReadAll(c.Request.Body)
				if err == nil {
					c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
					reqLog.Info("request",
						"method", c.Request.Method,
						"path", c.Request.URL.Path,
						"body", string(body))
				}
			}
		} else {
			reqLog.Info("request",
				"method", c.Request.Method,
				"path", c.Request.URL.Path)
		}

		c.Next()

		reqLog.Info("response",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String())
	}
}
