package domain

import "time"

// DefaultModel is used when a generation request names no model.
const DefaultModel = "gemini"

// Generation records one content generation run for a user.
type Generation struct {
	ID               string       `json:"id"`
	UserID           string       `json:"user_id"`
	ImageURL         *string      `json:"image_url,omitempty"`
	BusinessContext  JSONDocument `json:"business_context"`
	AnalysisResult   JSONDocument `json:"analysis_result"`
	GeneratedContent JSONDocument `json:"generated_content"`
	PageType         *string      `json:"page_type,omitempty"`
	ModelUsed        string       `json:"model_used"`
	TokensUsed       int          `json:"tokens_used"`
	CreatedAt        time.Time    `json:"created_at"`
}

// UsageAction names a metered action.
type UsageAction string

const (
	UsageActionAnalysis   UsageAction = "analysis"
	UsageActionGeneration UsageAction = "generation"
)

// UsageLog records model usage for billing and quotas.
type UsageLog struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id"`
	Action     UsageAction `json:"action"`
	TokensUsed int         `json:"tokens_used"`
	ModelUsed  string      `json:"model_used"`
	CreatedAt  time.Time   `json:"created_at"`
}

// GenerationPage is one page of a user's generation history.
type GenerationPage struct {
	Items     []Generation
	NextToken *string
}
