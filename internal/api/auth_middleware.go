package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/ericogr/arena-battles/internal/constants"
	"github.com/ericogr/arena-battles/internal/logging"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the Bearer token and injects identity into context.
func AuthRequired(tokens *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(constants.HeaderAuthorization)
		if !strings.HasPrefix(header, constants.BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody(constants.ErrAuthRequired, constants.CodeAuthRequired, ""))
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, constants.BearerPrefix))
		claims, err := tokens.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody(constants.ErrInvalidToken, constants.CodeInvalidToken, ""))
			return
		}
		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUserEmail, claims.Email)
		c.Next()
	}
}

// RequestLogger writes one structured line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := logging.Fields{
			constants.LogFieldMethod:    c.Request.Method,
			constants.LogFieldPath:      path,
			constants.LogFieldStatus:    c.Writer.Status(),
			constants.LogFieldLatencyMS: time.Since(start).Milliseconds(),
		}
		if uid := c.GetString(constants.ContextKeyUserID); uid != "" {
			fields[constants.LogFieldUserID] = uid
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logging.Warn("request failed", nil, fields)
			return
		}
		logging.Info("request", fields)
	}
}
