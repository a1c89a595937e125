package services

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/domain"
	portssvc "github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/ports/services"
)

// ErrEmptyImage is returned when no image bytes were supplied.
var ErrEmptyImage = errors.New("image is empty")

// APIKeyPool hands out API keys round-robin. It is safe for concurrent use.
type APIKeyPool struct {
	keys []string
	next atomic.Uint64
}

// NewAPIKeyPool creates a pool over keys. An empty pool yields no keys.
func NewAPIKeyPool(keys []string) *APIKeyPool {
	return &APIKeyPool{keys: append([]string(nil), keys...)}
}

// Next returns the next key and its 1-based slot, or false when the pool is empty.
func (p *APIKeyPool) Next() (string, int, bool) {
	if len(p.keys) == 0 {
		return "", 0, false
	}
	i := int((p.next.Add(1) - 1) % uint64(len(p.keys)))
	return p.keys[i], i + 1, true
}

// Len is the number of configured keys.
func (p *APIKeyPool) Len() int {
	return len(p.keys)
}

// imageAnalysisService returns a fixed page analysis. The vision model call is not wired yet;
// a key is still drawn from the pool so rotation is in place once it is.
type imageAnalysisService struct {
	BaseService
	keys *APIKeyPool
}

func NewImageAnalysisService(keys *APIKeyPool) portssvc.ImageAnalysisSvc {
	return &imageAnalysisService{keys: keys}
}

func (s *imageAnalysisService) AnalyzeScreenshot(ctx context.Context, image []byte) (domain.JSONDocument, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}

	if _, slot, ok := s.keys.Next(); ok {
		s.LogDebug(ctx, "Analyzing screenshot", slog.Int("key_slot", slot), slog.Int("bytes", len(image)))
	} else {
		s.LogDebug(ctx, "No vision API key configured, returning mock analysis")
	}

	return mockAnalysis(), nil
}

func mockAnalysis() domain.JSONDocument {
	return domain.JSONDocument(`{"sections":[{"type":"hero","position":1,"components":[` +
		`{"element":"main_title","current_content":"Example Title","word_count":2},` +
		`{"element":"subtitle","current_content":"Example Subtitle","word_count":2}]}],` +
		`"layout_type":"modern_saas","total_text_elements":2}`)
}
