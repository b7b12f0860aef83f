package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"schedparse/domain/schedule"
	"schedparse/ports"
)

const (
	patchMaxTokens = 512
	batchMaxTokens = 2048
)

// Enhancer asks a chat model to pull structured product fields out of raw
// schedule text. It only ever produces patches; the caller decides which
// fields to keep.
type Enhancer struct {
	client LLMClient
	model  string
}

// NewEnhancer wires an enhancer around any LLMClient.
func NewEnhancer(client LLMClient, model string) (*Enhancer, error) {
	if client == nil {
		return nil, fmt.Errorf("missing LLM client")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("missing model")
	}
	return &Enhancer{client: client, model: model}, nil
}

const patchSchema = `Return a single JSON object with any of these keys (omit a key when the text does not state it):
  "product_name": string
  "brand": string
  "colour": string
  "finish": string
  "material": string
  "width": integer millimetres
  "length": integer millimetres
  "height": integer millimetres
  "qty": integer
  "rrp": number
Do not invent values. Output JSON only, no prose, no markdown fences.`

// ExtractPatch extracts a partial product from one raw text blob.
func (e *Enhancer) ExtractPatch(ctx context.Context, rawText string, ec ports.EnhancementContext) (schedule.ProductPatch, error) {
	var b strings.Builder
	b.WriteString("Extract product fields from this line of an interior design product schedule.\n")
	writeContext(&b, ec)
	b.WriteString("\nText:\n")
	b.WriteString(rawText)
	b.WriteString("\n\n")
	b.WriteString(patchSchema)

	content, err := e.client.ChatCompletion(ctx, e.model, b.String(), patchMaxTokens)
	if err != nil {
		return schedule.ProductPatch{}, fmt.Errorf("enhancer completion: %w", err)
	}
	return decodePatch(content)
}

// ExtractBatch extracts patches for multiple items in one completion. The
// response must contain exactly one patch per item, in order.
func (e *Enhancer) ExtractBatch(ctx context.Context, items []ports.EnhancementItem) ([]schedule.ProductPatch, error) {
	if len(items) == 0 {
		return nil, nil
	}

	var b strings.Builder
	b.WriteString("Extract product fields from these lines of an interior design product schedule.\n")
	for i, item := range items {
		fmt.Fprintf(&b, "\nItem %d", i+1)
		writeContext(&b, item.Context)
		b.WriteString(":\n")
		b.WriteString(item.RawText)
		b.WriteString("\n")
	}
	b.WriteString("\nReturn a JSON array with exactly one object per item, in the same order.\n")
	b.WriteString(patchSchema)

	content, err := e.client.ChatCompletion(ctx, e.model, b.String(), batchMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("enhancer batch completion: %w", err)
	}

	var patches []schedule.ProductPatch
	if err := json.Unmarshal([]byte(extractJSON(content, '[', ']')), &patches); err != nil {
		return nil, fmt.Errorf("unmarshal batch patches: %w", err)
	}
	if len(patches) != len(items) {
		return nil, fmt.Errorf("enhancer returned %d patches for %d items", len(patches), len(items))
	}
	return patches, nil
}

func writeContext(b *strings.Builder, ec ports.EnhancementContext) {
	if ec.Sheet != "" {
		fmt.Fprintf(b, " (sheet %q, row %d", ec.Sheet, ec.Row)
		if ec.Section != "" {
			fmt.Fprintf(b, ", section %q", ec.Section)
		}
		b.WriteString(")")
	}
}

func decodePatch(content string) (schedule.ProductPatch, error) {
	var patch schedule.ProductPatch
	if err := json.Unmarshal([]byte(extractJSON(content, '{', '}')), &patch); err != nil {
		return schedule.ProductPatch{}, fmt.Errorf("unmarshal patch: %w", err)
	}
	return patch, nil
}

// extractJSON trims prose and markdown fences around the outermost
// open..close pair. Models wrap JSON in fences despite instructions.
func extractJSON(content string, open, closing byte) string {
	start := strings.IndexByte(content, open)
	end := strings.LastIndexByte(content, closing)
	if start < 0 || end < start {
		return content
	}
	return content[start : end+1]
}

// NoopEnhancer satisfies the enhancer port without doing anything. Used
// when no enhancer is configured.
type NoopEnhancer struct{}

func (NoopEnhancer) ExtractPatch(ctx context.Context, rawText string, ec ports.EnhancementContext) (schedule.ProductPatch, error) {
	return schedule.ProductPatch{}, nil
}

func (NoopEnhancer) ExtractBatch(ctx context.Context, items []ports.EnhancementItem) ([]schedule.ProductPatch, error) {
	return make([]schedule.ProductPatch, len(items)), nil
}

var (
	_ ports.EnhancerPort = (*Enhancer)(nil)
	_ ports.EnhancerPort = NoopEnhancer{}
)
