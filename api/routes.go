package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"pdfpress/pdf"
)

// Config holds server configuration
type Config struct {
	Port          string
	MaxFileSize   int64
	TempDir       string
	EngineTimeout time.Duration
}

func SetupRoutes(r *gin.Engine, config *Config, runner pdf.Runner) {
	apiGroup := r.Group("/api/pdf")
	{
		apiGroup.POST("/compress", func(c *gin.Context) { HandleCompress(c, config, runner) })
		apiGroup.GET("/modes", HandleModes)
	}

	r.GET("/health", HandleHealth)
}
