package services

import (
	"context"
	"log/slog"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/domain"
	portssvc "github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/ports/services"
)

// mockTokensUsed is reported for every mock generation.
const mockTokensUsed = 0

// contentGenerationService returns fixed page copy until a model provider is wired.
type contentGenerationService struct {
	BaseService
}

func NewContentGenerationService() portssvc.ContentGenerationSvc {
	return &contentGenerationService{}
}

func (s *contentGenerationService) GenerateContent(ctx context.Context, businessContext, analysis domain.JSONDocument, model string) (domain.JSONDocument, int, error) {
	if model == "" {
		model = domain.DefaultModel
	}
	s.LogDebug(ctx, "Generating content", slog.String("model", model),
		slog.Int("context_bytes", len(businessContext)), slog.Int("analysis_bytes", len(analysis)))

	content := domain.JSONDocument(`{"sections":[{"type":"hero","components":[` +
		`{"element":"main_title","content":"AI-Powered Content Excellence"},` +
		`{"element":"subtitle","content":"Transform your web presence with intelligent copy."}]}]}`)
	return content, mockTokensUsed, nil
}
