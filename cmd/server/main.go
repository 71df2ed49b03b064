package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/codyseavey/tcg-matcher/internal/api"
	"github.com/codyseavey/tcg-matcher/internal/matcher"
	"github.com/codyseavey/tcg-matcher/internal/ratelimit"
	"github.com/codyseavey/tcg-matcher/internal/services"
)

func main() {
	// Matcher configuration
	opts := matcher.DefaultOptions()
	if v, ok := envFloat("MATCH_THRESHOLD"); ok {
		if v >= 0 && v <= 1 {
			opts.Threshold = v
		} else {
			log.Printf("Warning: ignoring MATCH_THRESHOLD=%v (must be in [0, 1])", v)
		}
	}
	if v, ok := envInt("MATCH_FALLBACK_BUCKET_LIMIT"); ok && v > 0 {
		opts.FallbackBucketLimit = v
	}

	workers, _ := envInt("MATCH_WORKERS")
	cacheSize, _ := envInt("MATCH_RUN_CACHE_SIZE")

	rps := 5.0
	if v, ok := envFloat("MATCH_RATE_LIMIT_RPS"); ok && v > 0 {
		rps = v
	}
	burst := 10
	if v, ok := envInt("MATCH_RATE_LIMIT_BURST"); ok && v > 0 {
		burst = v
	}

	// Initialize services
	matchService := services.NewMatchService(opts, workers, cacheSize)
	consolidationService := services.NewConsolidationService(matchService)

	limiter := ratelimit.New(rps, burst)
	defer limiter.Stop()
	log.Printf("Rate limiter: %.1f req/s per client, burst %d", rps, burst)

	// Setup router
	router := api.SetupRouter(matchService, consolidationService, limiter)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Create HTTP server for graceful shutdown
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests a deadline to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func envInt(key string) (int, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Warning: failed to parse %s=%q: %v", key, s, err)
		return 0, false
	}
	return v, true
}

func envFloat(key string) (float64, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Printf("Warning: failed to parse %s=%q: %v", key, s, err)
		return 0, false
	}
	return v, true
}
