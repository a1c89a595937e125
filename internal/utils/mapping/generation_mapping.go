package mapping

import (
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/domain"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/models"
)

// ToModelGeneration converts a domain Generation to a model Generation
func ToModelGeneration(d domain.Generation) models.Generation {
	return models.Generation{
		ID:               d.ID,
		UserID:           d.UserID,
		ImageURL:         d.ImageURL,
		BusinessContext:  []byte(d.BusinessContext),
		AnalysisResult:   []byte(d.AnalysisResult),
		GeneratedContent: []byte(d.GeneratedContent),
		PageType:         d.PageType,
		ModelUsed:        d.ModelUsed,
		TokensUsed:       d.TokensUsed,
		CreatedAt:        d.CreatedAt,
	}
}

// ToDomainGeneration converts a model Generation to a domain Generation
func ToDomainGeneration(m models.Generation) domain.Generation {
	return domain.Generation{
		ID:               m.ID,
		UserID:           m.UserID,
		ImageURL:         m.ImageURL,
		BusinessContext:  domain.JSONDocument(m.BusinessContext),
		AnalysisResult:   domain.JSONDocument(m.AnalysisResult),
		GeneratedContent: domain.JSONDocument(m.GeneratedContent),
		PageType:         m.PageType,
		ModelUsed:        m.ModelUsed,
		TokensUsed:       m.TokensUsed,
		CreatedAt:        m.CreatedAt,
	}
}

// ToDomainGenerationSlice converts a slice of model Generations to domain Generations
func ToDomainGenerationSlice(ms []models.Generation) []domain.Generation {
	ds := make([]domain.Generation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainGeneration(m)
	}
	return ds
}

// ToModelUsageLog converts a domain UsageLog to a model UsageLog
func ToModelUsageLog(d domain.UsageLog) models.UsageLog {
	return models.UsageLog{
		ID:         d.ID,
		UserID:     d.UserID,
		Action:     string(d.Action),
		TokensUsed: d.TokensUsed,
		ModelUsed:  d.ModelUsed,
		CreatedAt:  d.CreatedAt,
	}
}
