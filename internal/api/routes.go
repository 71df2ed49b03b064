package api

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/codyseavey/tcg-matcher/internal/api/handlers"
	"github.com/codyseavey/tcg-matcher/internal/metrics"
	"github.com/codyseavey/tcg-matcher/internal/ratelimit"
	"github.com/codyseavey/tcg-matcher/internal/services"
)

func SetupRouter(matchService *services.MatchService, consolidationService *services.ConsolidationService, limiter *ratelimit.KeyedRateLimiter) *gin.Engine {
	router := gin.Default()
	router.Use(metricsMiddleware())

	// CORS configuration - allow origins from environment or use defaults
	config := cors.DefaultConfig()
	if corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS"); corsOrigins != "" {
		config.AllowOrigins = strings.Split(corsOrigins, ",")
	} else {
		config.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.AllowCredentials = false
	router.Use(cors.New(config))

	// Initialize handlers
	matchHandler := handlers.NewMatchHandler(matchService)
	consolidationHandler := handlers.NewConsolidationHandler(consolidationService)

	// API routes
	api := router.Group("/api")
	if limiter != nil {
		api.Use(rateLimitMiddleware(limiter))
	}
	{
		// Match routes
		match := api.Group("/match")
		{
			match.POST("", matchHandler.Match)
			match.POST("/detect", matchHandler.Detect)
			match.GET("/runs/:id/groups", matchHandler.GetRunGroups)
		}

		// Store listing routes
		api.POST("/consolidate", consolidationHandler.Consolidate)
		api.POST("/compare", consolidationHandler.Compare)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// rateLimitMiddleware throttles each client IP independently
func rateLimitMiddleware(limiter *ratelimit.KeyedRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			metrics.RateLimitedTotal.Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
