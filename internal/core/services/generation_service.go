package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/apperrors"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/domain"
	portsrepo "github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/ports/repositories"
	portssvc "github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/ports/services"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/dto"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/utils/pagination"
	"github.com/google/uuid"
)

// GenerationService implements portssvc.GenerationSvcFacade.
type GenerationService struct {
	BaseService
	generationRepo portsrepo.GenerationRepositoryFacade
	usageRepo      portsrepo.UsageRepositoryFacade
	analyzer       portssvc.ImageAnalysisSvc
	generator      portssvc.ContentGenerationSvc
	now            Clock
}

var _ portssvc.GenerationSvcFacade = (*GenerationService)(nil)

func NewGenerationService(
	generationRepo portsrepo.GenerationRepositoryFacade,
	usageRepo portsrepo.UsageRepositoryFacade,
	analyzer portssvc.ImageAnalysisSvc,
	generator portssvc.ContentGenerationSvc,
	now Clock,
) *GenerationService {
	if now == nil {
		now = time.Now
	}
	return &GenerationService{
		generationRepo: generationRepo,
		usageRepo:      usageRepo,
		analyzer:       analyzer,
		generator:      generator,
		now:            now,
	}
}

func (s *GenerationService) Analyze(ctx context.Context, userID string, image []byte) (domain.JSONDocument, error) {
	analysis, err := s.analyzer.AnalyzeScreenshot(ctx, image)
	if err != nil {
		if errors.Is(err, ErrEmptyImage) {
			return nil, apperrors.NewFieldError("file", "image is empty")
		}
		return nil, fmt.Errorf("failed to analyze screenshot: %w", err)
	}

	usage := domain.UsageLog{
		ID:        uuid.NewString(),
		UserID:    userID,
		Action:    domain.UsageActionAnalysis,
		ModelUsed: domain.DefaultModel,
		CreatedAt: s.now().UTC(),
	}
	if err := s.usageRepo.SaveUsageLog(ctx, usage); err != nil {
		// best effort
		s.LogError(ctx, err, "Failed to record analysis usage", slog.String("user_id", userID))
	}

	return analysis, nil
}

func (s *GenerationService) Generate(ctx context.Context, userID string, req dto.GenerateContentForm) (*domain.Generation, error) {
	analysis, err := parseDocument("analysis_result", req.AnalysisResult)
	if err != nil {
		return nil, err
	}
	businessContext, err := parseDocument("business_context", req.BusinessContext)
	if err != nil {
		return nil, err
	}

	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = domain.DefaultModel
	}

	content, tokensUsed, err := s.generator.GenerateContent(ctx, businessContext, analysis, model)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	now := s.now().UTC()
	generation := domain.Generation{
		ID:               uuid.NewString(),
		UserID:           userID,
		BusinessContext:  businessContext,
		AnalysisResult:   analysis,
		GeneratedContent: content,
		ModelUsed:        model,
		TokensUsed:       tokensUsed,
		CreatedAt:        now,
	}
	if pageType := strings.TrimSpace(req.PageType); pageType != "" {
		generation.PageType = &pageType
	}
	usage := domain.UsageLog{
		ID:         uuid.NewString(),
		UserID:     userID,
		Action:     domain.UsageActionGeneration,
		TokensUsed: tokensUsed,
		ModelUsed:  model,
		CreatedAt:  now,
	}

	if err := s.generationRepo.SaveGeneration(ctx, generation, usage); err != nil {
		s.LogError(ctx, err, "Failed to save generation", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save generation: %w", err)
	}

	s.LogInfo(ctx, "Generation created", slog.String("generation_id", generation.ID), slog.String("model", model))
	return &generation, nil
}

func (s *GenerationService) ListGenerations(ctx context.Context, userID string, params dto.ListGenerationsParams) (*domain.GenerationPage, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	var cursor *pagination.Cursor
	if params.NextToken != "" {
		c, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, apperrors.NewFieldError("next_token", "invalid pagination token")
		}
		cursor = c
	}

	items, err := s.generationRepo.ListGenerationsByUser(ctx, userID, limit, cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}

	page := &domain.GenerationPage{Items: items}
	if len(items) > limit {
		page.Items = items[:limit]
		last := page.Items[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ID)
		page.NextToken = &token
	}
	return page, nil
}

func (s *GenerationService) GetGeneration(ctx context.Context, userID, generationID string) (*domain.Generation, error) {
	if _, err := uuid.Parse(generationID); err != nil {
		return nil, apperrors.ErrNotFound
	}
	generation, err := s.generationRepo.FindGenerationByID(ctx, userID, generationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get generation: %w", err)
	}
	return generation, nil
}

func parseDocument(field, raw string) (domain.JSONDocument, error) {
	doc := domain.JSONDocument(raw)
	if err := doc.Validate(); err != nil {
		return nil, apperrors.NewFieldError(field, "must be a JSON object")
	}
	return doc, nil
}
