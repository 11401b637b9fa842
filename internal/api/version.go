package api

import (
	"net/http"

	"github.com/ericogr/arena-battles/internal/version"
	"github.com/gin-gonic/gin"
)

// Version returns build and VCS metadata injected at build time.
func Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": version.Version,
		"commit":  version.Commit,
		"date":    version.Date,
		"dirty":   version.Dirty,
	})
}

// Root is the liveness endpoint probed by cmd/healthcheck.
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "arena battles API", "version": version.Version})
}
