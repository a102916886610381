package database

import (
	"context"
	"fmt"

	"transbot/internal/domain/entities"
	"transbot/internal/ports/output"
)

var _ output.HistoryRepository = (*HistoryRepository)(nil)

const (
	createTranslation = `INSERT INTO translations (user_id, source_lang, target_lang, input_text, output_text, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, now()))
RETURNING id, created_at`

	listTranslationsByUser = `SELECT id, user_id, source_lang, target_lang, input_text, output_text, status, created_at
FROM translations
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2`
)

const maxHistoryLimit = 25

// HistoryRepository implements output.HistoryRepository using pgx.
type HistoryRepository struct {
	db DBTX
}

// NewHistoryRepository creates a HistoryRepository.
func NewHistoryRepository(db DBTX) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Create(ctx context.Context, record *entities.TranslationRecord) error {
	var row translationRow
	err := r.db.QueryRow(ctx, createTranslation,
		record.UserID,
		record.SourceLang,
		record.TargetLang,
		record.InputText,
		record.OutputText,
		record.Status,
		timeToPgtypeTimestamptz(record.CreatedAt),
	).Scan(&row.ID, &row.CreatedAt)
	if err != nil {
		return fmt.Errorf("create translation: %w", err)
	}
	record.ID = uint(row.ID)
	record.CreatedAt = pgtypeTimestamptzToTime(row.CreatedAt)
	return nil
}

// FindRecentByUserID returns the user's latest records, newest first. limit is
// clamped to [1, 25].
func (r *HistoryRepository) FindRecentByUserID(ctx context.Context, userID string, limit int) ([]entities.TranslationRecord, error) {
	if limit <= 0 {
		limit = 1
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	rows, err := r.db.Query(ctx, listTranslationsByUser, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list translations by user id: %w", err)
	}
	defer rows.Close()

	out := make([]entities.TranslationRecord, 0, limit)
	for rows.Next() {
		var row translationRow
		if err := rows.Scan(
			&row.ID,
			&row.UserID,
			&row.SourceLang,
			&row.TargetLang,
			&row.InputText,
			&row.OutputText,
			&row.Status,
			&row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan translation: %w", err)
		}
		out = append(out, translationToDomain(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate translations: %w", err)
	}
	return out, nil
}
