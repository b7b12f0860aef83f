package ports

import (
	"context"

	"schedparse/domain/schedule"
)

// EnhancementContext tells the enhancer where a product's raw text came
// from so it can make better extraction decisions.
type EnhancementContext struct {
	Sheet   string `json:"sheet"`
	Row     int    `json:"row"`
	Section string `json:"section,omitempty"`
}

// EnhancerPort produces partial product patches from raw schedule text.
// The orchestrator merges patches only into still-nil fields; an enhancer
// can never overwrite a heuristically extracted value.
type EnhancerPort interface {
	// ExtractPatch extracts a partial product from one raw text blob.
	ExtractPatch(ctx context.Context, rawText string, ec EnhancementContext) (schedule.ProductPatch, error)

	// ExtractBatch extracts patches for multiple items, one patch per
	// input in the same order.
	ExtractBatch(ctx context.Context, items []EnhancementItem) ([]schedule.ProductPatch, error)
}

// EnhancementItem is one unit of work for ExtractBatch.
type EnhancementItem struct {
	RawText string
	Context EnhancementContext
}
