package services

import (
	"context"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/domain"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/dto"
)

// ImageAnalysisSvc extracts page structure from a screenshot.
type ImageAnalysisSvc interface {
	AnalyzeScreenshot(ctx context.Context, image []byte) (domain.JSONDocument, error)
}

// ContentGenerationSvc writes page copy from a business context and a page analysis.
type ContentGenerationSvc interface {
	// GenerateContent returns the generated document and the tokens the model consumed.
	GenerateContent(ctx context.Context, businessContext, analysis domain.JSONDocument, model string) (domain.JSONDocument, int, error)
}

// GenerationSvcFacade runs analyses and generations on behalf of a user and keeps their history.
type GenerationSvcFacade interface {
	// Analyze runs screenshot analysis and records the usage.
	Analyze(ctx context.Context, userID string, image []byte) (domain.JSONDocument, error)

	// Generate validates the JSON inputs, generates content and persists the generation with its usage log.
	Generate(ctx context.Context, userID string, req dto.GenerateContentForm) (*domain.Generation, error)

	// ListGenerations returns one page of the user's generations, newest first.
	ListGenerations(ctx context.Context, userID string, params dto.ListGenerationsParams) (*domain.GenerationPage, error)

	// GetGeneration returns one generation owned by the user.
	GetGeneration(ctx context.Context, userID, generationID string) (*domain.Generation, error)
}
