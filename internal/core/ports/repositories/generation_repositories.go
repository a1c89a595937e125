package repositories

import (
	"context"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/domain"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/utils/pagination"
)

// GenerationReader defines read operations for generation history.
type GenerationReader interface {
	// FindGenerationByID returns a generation owned by userID. Other users' records yield apperrors.ErrNotFound.
	FindGenerationByID(ctx context.Context, userID, generationID string) (*domain.Generation, error)

	// ListGenerationsByUser returns up to limit+1 generations ordered by created_at DESC, id DESC,
	// starting strictly after cursor when it is non-nil.
	ListGenerationsByUser(ctx context.Context, userID string, limit int, cursor *pagination.Cursor) ([]domain.Generation, error)
}

// GenerationWriter defines write operations for generation history.
type GenerationWriter interface {
	// SaveGeneration inserts the generation and its usage log in one transaction.
	SaveGeneration(ctx context.Context, generation domain.Generation, usage domain.UsageLog) error
}

// GenerationRepositoryFacade combines all generation-related repository interfaces
type GenerationRepositoryFacade interface {
	GenerationReader
	GenerationWriter
}
