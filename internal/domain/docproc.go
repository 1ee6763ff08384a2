package domain

import "context"

// ExtractedKnowledge is the factual content pulled out of an uploaded
// study document, ready to feed quiz generation.
type ExtractedKnowledge struct {
	Type      string `json:"type"`
	Pages     int    `json:"pages,omitempty"`
	Sheets    int    `json:"sheets,omitempty"`
	Knowledge string `json:"knowledge"`
}

// KnowledgeExtractor defines the interface for turning an uploaded
// document into knowledge text. Implementations are LLM-backed.
type KnowledgeExtractor interface {
	ExtractKnowledge(ctx context.Context, filePath, ext string) (*ExtractedKnowledge, error)
}
