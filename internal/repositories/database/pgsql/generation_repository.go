package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/apperrors"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/domain"
	portsrepo "github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/ports/repositories"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/models"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/utils/mapping"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

const (
	selectGenerationFields = `id, user_id, image_url, business_context, analysis_result, generated_content,
		page_type, model_used, tokens_used, created_at`

	insertGenerationQuery = `
		INSERT INTO generations (id, user_id, image_url, business_context, analysis_result, generated_content,
			page_type, model_used, tokens_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	insertUsageLogQuery = `
		INSERT INTO usage_logs (id, user_id, action, tokens_used, model_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
)

type PgxGenerationRepository struct {
	BaseRepository
}

func newPgxGenerationRepository(db PgxIface) *PgxGenerationRepository {
	return &PgxGenerationRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.GenerationRepositoryFacade = (*PgxGenerationRepository)(nil)

func scanGeneration(row pgx.Row) (domain.Generation, error) {
	var m models.Generation
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.ImageURL,
		&m.BusinessContext,
		&m.AnalysisResult,
		&m.GeneratedContent,
		&m.PageType,
		&m.ModelUsed,
		&m.TokensUsed,
		&m.CreatedAt,
	)
	if err != nil {
		return domain.Generation{}, err
	}
	return mapping.ToDomainGeneration(m), nil
}

func (r *PgxGenerationRepository) FindGenerationByID(ctx context.Context, userID, generationID string) (*domain.Generation, error) {
	query := `SELECT ` + selectGenerationFields + ` FROM generations WHERE id = $1 AND user_id = $2`
	g, err := scanGeneration(r.DB.QueryRow(ctx, query, generationID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find generation %s: %w", generationID, err)
	}
	return &g, nil
}

// ListGenerationsByUser uses keyset pagination on (created_at, id) and fetches one extra row
// so callers can tell whether another page exists.
func (r *PgxGenerationRepository) ListGenerationsByUser(ctx context.Context, userID string, limit int, cursor *pagination.Cursor) ([]domain.Generation, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if cursor == nil {
		query := `SELECT ` + selectGenerationFields + ` FROM generations
			WHERE user_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2`
		rows, err = r.DB.Query(ctx, query, userID, limit+1)
	} else {
		query := `SELECT ` + selectGenerationFields + ` FROM generations
			WHERE user_id = $1 AND (created_at, id) < ($2, $3)
			ORDER BY created_at DESC, id DESC
			LIMIT $4`
		rows, err = r.DB.Query(ctx, query, userID, cursor.CreatedAt, cursor.ID, limit+1)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query generations: %w", err)
	}
	defer rows.Close()

	generations := []domain.Generation{}
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan generation row: %w", err)
		}
		generations = append(generations, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating generation rows: %w", err)
	}
	return generations, nil
}

// SaveGeneration writes the generation and its usage entry atomically.
func (r *PgxGenerationRepository) SaveGeneration(ctx context.Context, generation domain.Generation, usage domain.UsageLog) (err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	g := mapping.ToModelGeneration(generation)
	if _, err = tx.Exec(ctx, insertGenerationQuery,
		g.ID, g.UserID, g.ImageURL, g.BusinessContext, g.AnalysisResult, g.GeneratedContent,
		g.PageType, g.ModelUsed, g.TokensUsed, g.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert generation: %w", err)
	}

	u := mapping.ToModelUsageLog(usage)
	if _, err = tx.Exec(ctx, insertUsageLogQuery,
		u.ID, u.UserID, u.Action, u.TokensUsed, u.ModelUsed, u.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert usage log: %w", err)
	}

	return r.Commit(ctx, tx)
}
