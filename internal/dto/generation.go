package dto

import (
	"encoding/json"
	"time"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/domain"
)

// GenerateContentForm is the multipart/url-encoded payload of the generate endpoint.
// analysis_result and business_context are JSON objects encoded as strings.
type GenerateContentForm struct {
	AnalysisResult  string `form:"analysis_result" binding:"required"`
	BusinessContext string `form:"business_context" binding:"required"`
	PageType        string `form:"page_type" binding:"omitempty,max=64"`
	Model           string `form:"model" binding:"omitempty,max=64"`
}

// ListGenerationsParams defines query parameters for listing generations.
type ListGenerationsParams struct {
	Limit     int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"next_token"`
}

// GenerationResponse is the API shape of a stored generation.
type GenerationResponse struct {
	ID               string          `json:"id"`
	PageType         *string         `json:"page_type"`
	ImageURL         *string         `json:"image_url"`
	BusinessContext  json.RawMessage `json:"business_context" swaggertype:"object"`
	AnalysisResult   json.RawMessage `json:"analysis_result" swaggertype:"object"`
	GeneratedContent json.RawMessage `json:"generated_content" swaggertype:"object"`
	ModelUsed        string          `json:"model_used"`
	TokensUsed       int             `json:"tokens_used"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ListGenerationsResponse wraps one page of generations.
type ListGenerationsResponse struct {
	Generations []GenerationResponse `json:"generations"`
	NextToken   *string              `json:"next_token,omitempty"`
}

func rawOrNull(d domain.JSONDocument) json.RawMessage {
	if len(d) == 0 {
		return json.RawMessage("null")
	}
	return json.RawMessage(d)
}

func ToGenerationResponse(g *domain.Generation) GenerationResponse {
	return GenerationResponse{
		ID:               g.ID,
		PageType:         g.PageType,
		ImageURL:         g.ImageURL,
		BusinessContext:  rawOrNull(g.BusinessContext),
		AnalysisResult:   rawOrNull(g.AnalysisResult),
		GeneratedContent: rawOrNull(g.GeneratedContent),
		ModelUsed:        g.ModelUsed,
		TokensUsed:       g.TokensUsed,
		CreatedAt:        g.CreatedAt,
	}
}

func ToListGenerationsResponse(page *domain.GenerationPage) ListGenerationsResponse {
	items := make([]GenerationResponse, len(page.Items))
	for i := range page.Items {
		items[i] = ToGenerationResponse(&page.Items[i])
	}
	return ListGenerationsResponse{Generations: items, NextToken: page.NextToken}
}
