package main

import (
	"fmt"
	"log"
	"os"

	"github.com/platefinder/backend/config"
	httpDelivery "github.com/platefinder/backend/internal/delivery/http"
	"github.com/platefinder/backend/internal/domain"
	"github.com/platefinder/backend/internal/infrastructure/dataset"
	"github.com/platefinder/backend/internal/infrastructure/feedback"
	"github.com/platefinder/backend/internal/infrastructure/session"
	"github.com/platefinder/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting PlateFinder Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Dataset: %s (encodings: %s, fallback %s)",
		cfg.Dataset.Path, cfg.Dataset.PrimaryEncoding, cfg.Dataset.FallbackEncoding)

	debug := cfg.Server.Environment == "development"

	// Initialize infrastructure dependencies
	loader := dataset.NewLoader(cfg.Dataset.Path, cfg.Dataset.PrimaryEncoding, cfg.Dataset.FallbackEncoding)
	sessions := session.NewStore(cfg.Session.TTL)
	log.Printf("Filtered-set TTL: %s", cfg.Session.TTL)

	var feedbackStore domain.FeedbackRepository
	if cfg.Feedback.Enabled {
		store, err := feedback.NewStore(cfg.Feedback.Path)
		if err != nil {
			log.Fatalf("Failed to open feedback store: %v", err)
		}
		defer store.Close()
		feedbackStore = store
		log.Printf("Feedback store: %s", cfg.Feedback.Path)
	} else {
		log.Printf("Feedback store disabled")
	}

	// Initialize usecase layer
	pipeline := usecase.NewPipelineService(loader, usecase.PipelineConfig{
		MaxMissingRatio:    cfg.Cleaning.MaxMissingRatio,
		DefaultRating:      cfg.Cleaning.DefaultRating,
		FallbackCost:       cfg.Cleaning.FallbackCost,
		EnableDebugLogging: debug,
	})

	engine := usecase.NewRecommendationService(usecase.RankingConfig{
		VoteCap:            cfg.Ranking.VoteCap,
		DefaultTopN:        cfg.Ranking.DefaultTopN,
		EnableDebugLogging: debug,
	})

	log.Printf("Cleaning: max_missing_ratio=%.2f, default_rating=%.1f, fallback_cost=%.0f",
		cfg.Cleaning.MaxMissingRatio, cfg.Cleaning.DefaultRating, cfg.Cleaning.FallbackCost)
	log.Printf("Ranking: vote_cap=%d, default_top_n=%d", cfg.Ranking.VoteCap, cfg.Ranking.DefaultTopN)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(pipeline, engine, sessions, feedbackStore)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
