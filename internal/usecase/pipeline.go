package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/platefinder/backend/internal/domain"
)

// PipelineConfig holds configuration for the cleaning pipeline
type PipelineConfig struct {
	MaxMissingRatio    float64
	DefaultRating      float64
	FallbackCost       float64
	EnableDebugLogging bool
}

// PipelineService runs the normalize -> clean -> derive pipeline over
// the raw dataset source. Each run re-reads and re-cleans the full
// source and produces fresh, unshared output, so independent callers
// may invoke it concurrently without coordination.
type PipelineService struct {
	source     domain.DatasetSource
	normalizer *Normalizer
	cleaner    *Cleaner
}

// NewPipelineService creates a new pipeline service with dependencies
func NewPipelineService(source domain.DatasetSource, config PipelineConfig) *PipelineService {
	return &PipelineService{
		source:     source,
		normalizer: NewNormalizer(config.EnableDebugLogging),
		cleaner: NewCleaner(CleanerConfig{
			MaxMissingRatio:    config.MaxMissingRatio,
			DefaultRating:      config.DefaultRating,
			FallbackCost:       config.FallbackCost,
			EnableDebugLogging: config.EnableDebugLogging,
		}),
	}
}

// CleanResult is the pipeline output: canonical records, the presence
// flags the engine branches on, and the schema report side channel.
type CleanResult struct {
	Records []domain.Restaurant
	Columns domain.ColumnSet
	Report  domain.SchemaReport
}

// Clean loads the source and runs the full pipeline. A source that
// cannot be read is the one fatal condition and surfaces as
// ErrLoadFailed; every per-row or per-field defect is absorbed by
// defaulting instead.
func (s *PipelineService) Clean(ctx context.Context) (*CleanResult, error) {
	table, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("pipeline halted: %w", err)
	}

	normalized, report := s.normalizer.Normalize(table)
	records := s.cleaner.Clean(normalized)

	log.Printf("[PIPELINE] cleaned %d records from %d source rows", len(records), len(table.Rows))

	return &CleanResult{
		Records: records,
		Columns: normalized.Columns,
		Report:  report,
	}, nil
}
