package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/domain"
	portsrepo "github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/ports/repositories"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/utils/mapping"
)

type PgxUsageRepository struct {
	BaseRepository
}

func newPgxUsageRepository(db PgxIface) *PgxUsageRepository {
	return &PgxUsageRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.UsageRepositoryFacade = (*PgxUsageRepository)(nil)

func (r *PgxUsageRepository) SaveUsageLog(ctx context.Context, usage domain.UsageLog) error {
	u := mapping.ToModelUsageLog(usage)
	if _, err := r.DB.Exec(ctx, insertUsageLogQuery,
		u.ID, u.UserID, u.Action, u.TokensUsed, u.ModelUsed, u.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert usage log: %w", err)
	}
	return nil
}

func (r *PgxUsageRepository) SumTokensSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	var total int64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(tokens_used), 0)::bigint FROM usage_logs WHERE user_id = $1 AND created_at >= $2`,
		userID, since,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum usage: %w", err)
	}
	return total, nil
}
