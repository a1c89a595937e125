package models

import "time"

// Generation is a row of the generations table. Document columns are jsonb.
type Generation struct {
	ID               string    `db:"id"`
	UserID           string    `db:"user_id"`
	ImageURL         *string   `db:"image_url"`
	BusinessContext  []byte    `db:"business_context"`
	AnalysisResult   []byte    `db:"analysis_result"`
	GeneratedContent []byte    `db:"generated_content"`
	PageType         *string   `db:"page_type"`
	ModelUsed        string    `db:"model_used"`
	TokensUsed       int       `db:"tokens_used"`
	CreatedAt        time.Time `db:"created_at"`
}

// UsageLog is a row of the usage_logs table.
type UsageLog struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	Action     string    `db:"action"`
	TokensUsed int       `db:"tokens_used"`
	ModelUsed  string    `db:"model_used"`
	CreatedAt  time.Time `db:"created_at"`
}
