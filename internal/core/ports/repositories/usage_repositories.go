package repositories

import (
	"context"
	"time"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/domain"
)

// UsageRepositoryFacade records and aggregates model usage.
type UsageRepositoryFacade interface {
	// SaveUsageLog inserts a standalone usage entry.
	SaveUsageLog(ctx context.Context, usage domain.UsageLog) error

	// SumTokensSince returns the tokens a user consumed since the given time.
	SumTokensSince(ctx context.Context, userID string, since time.Time) (int64, error)
}
