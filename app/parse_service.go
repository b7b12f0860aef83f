package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/montanaflynn/stats"

	"schedparse/domain/core"
	"schedparse/domain/schedule"
	"schedparse/internal/config"
	"schedparse/internal/extract"
	"schedparse/ports"
)

// ParseService orchestrates one workbook parse: heuristic extraction,
// optional LLM gap fill, dedupe, and persistence.
type ParseService struct {
	parser   *extract.Parser
	enhancer ports.EnhancerPort
	repo     ports.ScheduleRepository
	cfg      config.EnhancerConfig
}

// NewParseService wires the service. Enhancer and repo may be nil when
// those features are not configured.
func NewParseService(parser *extract.Parser, enhancer ports.EnhancerPort, repo ports.ScheduleRepository, cfg config.EnhancerConfig) *ParseService {
	return &ParseService{
		parser:   parser,
		enhancer: enhancer,
		repo:     repo,
		cfg:      cfg,
	}
}

// Parse runs the full extraction pipeline over an already-opened workbook.
func (s *ParseService) Parse(ctx context.Context, wb ports.Workbook, scheduleName string) (schedule.ParseResult, error) {
	started := time.Now()

	extractions := s.parser.ParseWorkbook(wb)
	log.Printf("[ParseService] extracted %d rows from %q", len(extractions), scheduleName)

	if s.cfg.Enabled && s.enhancer != nil {
		s.enhance(ctx, extractions)
	}

	products := make([]schedule.Product, 0, len(extractions))
	for _, ex := range extractions {
		products = append(products, ex.Product)
	}
	products = extract.DedupeByDocCode(products)

	result := schedule.ParseResult{
		ScheduleName: scheduleName,
		Products:     products,
	}
	logSummary(scheduleName, products, time.Since(started))
	return result, nil
}

// enhance runs the LLM gap-fill pass. In fallback mode only sparse
// products are sent; in refine mode every product is. Failures are logged
// and the heuristic result stands.
func (s *ParseService) enhance(ctx context.Context, extractions []schedule.Extraction) {
	var candidates []int
	for i, ex := range extractions {
		if s.cfg.Mode == config.EnhancerModeRefine || ex.Product.MissingKeyFieldCount() >= s.cfg.MinMissingFields {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return
	}

	batchSize := s.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 5
	}

	applied := 0
	for start := 0; start < len(candidates); start += batchSize {
		end := min(start+batchSize, len(candidates))
		batch := candidates[start:end]

		items := make([]ports.EnhancementItem, len(batch))
		for j, idx := range batch {
			ex := extractions[idx]
			items[j] = ports.EnhancementItem{
				RawText: ex.RawText,
				Context: ports.EnhancementContext{
					Sheet:   ex.Sheet,
					Row:     ex.Row,
					Section: ex.Section,
				},
			}
		}

		patches, err := s.enhancer.ExtractBatch(ctx, items)
		if err != nil {
			log.Printf("[ParseService] enhancement batch failed, keeping heuristic values: %v", err)
			continue
		}
		for j, idx := range batch {
			extractions[idx].Product.ApplyPatch(patches[j])
			applied++
		}
	}
	log.Printf("[ParseService] enhancement applied %d/%d patches (mode=%s)", applied, len(candidates), s.cfg.Mode)
}

// ParseAndStore parses the workbook and, when a repository is configured,
// records the run. The parse result is returned even if storage fails.
func (s *ParseService) ParseAndStore(ctx context.Context, wb ports.Workbook, scheduleName, filename string) (schedule.ParseResult, *ports.ParseRun, error) {
	result, err := s.Parse(ctx, wb, scheduleName)
	if err != nil {
		return schedule.ParseResult{}, nil, err
	}
	if s.repo == nil {
		return result, nil, nil
	}

	run := &ports.ParseRun{
		ID:           core.ParseRunID(core.NewID()),
		Filename:     filename,
		ScheduleName: result.ScheduleName,
		ProductCount: len(result.Products),
		Result:       result,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, run); err != nil {
		return result, nil, fmt.Errorf("store parse run: %w", err)
	}
	return result, run, nil
}

// GetRun fetches a stored parse run by ID.
func (s *ParseService) GetRun(ctx context.Context, id core.ParseRunID) (*ports.ParseRun, error) {
	if s.repo == nil {
		return nil, core.ErrRepositoryUnavailable
	}
	return s.repo.GetByID(ctx, id)
}

// ListRuns returns stored parse runs, newest first.
func (s *ParseService) ListRuns(ctx context.Context, limit, offset int) ([]*ports.ParseRun, error) {
	if s.repo == nil {
		return nil, core.ErrRepositoryUnavailable
	}
	return s.repo.List(ctx, limit, offset)
}

// DeleteRun removes a stored parse run.
func (s *ParseService) DeleteRun(ctx context.Context, id core.ParseRunID) error {
	if s.repo == nil {
		return core.ErrRepositoryUnavailable
	}
	return s.repo.Delete(ctx, id)
}

// HasRepository reports whether parse runs are persisted.
func (s *ParseService) HasRepository() bool {
	return s.repo != nil
}

func logSummary(scheduleName string, products []schedule.Product, elapsed time.Duration) {
	if len(products) == 0 {
		log.Printf("[ParseService] %q: no products extracted (%s)", scheduleName, elapsed.Round(time.Millisecond))
		return
	}

	withCode := 0
	missing := make([]float64, 0, len(products))
	prices := make([]float64, 0, len(products))
	for _, p := range products {
		if p.DocCode != nil {
			withCode++
		}
		missing = append(missing, float64(p.MissingKeyFieldCount()))
		if p.RRP != nil {
			prices = append(prices, *p.RRP)
		}
	}

	meanMissing, _ := stats.Mean(missing)
	summary := fmt.Sprintf("%d products, %d with codes, %.1f key fields missing on average",
		len(products), withCode, meanMissing)
	if len(prices) > 0 {
		medianPrice, err := stats.Median(prices)
		if err == nil {
			summary += fmt.Sprintf(", median price %.2f", medianPrice)
		}
	}
	log.Printf("[ParseService] %q: %s (%s)", scheduleName, summary, elapsed.Round(time.Millisecond))
}
