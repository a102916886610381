package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"transbot/internal/domain"
	"transbot/internal/domain/entities"
	"transbot/internal/ports/output"
)

var _ output.PreferenceRepository = (*PreferenceRepository)(nil)

const (
	getPreference = `SELECT user_id, target_lang, updated_at FROM user_preferences WHERE user_id = $1`

	upsertPreference = `INSERT INTO user_preferences (user_id, target_lang, updated_at)
VALUES ($1, $2, COALESCE($3, now()))
ON CONFLICT (user_id) DO UPDATE SET target_lang = EXCLUDED.target_lang, updated_at = EXCLUDED.updated_at`
)

// PreferenceRepository implements output.PreferenceRepository using pgx.
type PreferenceRepository struct {
	db DBTX
}

// NewPreferenceRepository creates a PreferenceRepository.
func NewPreferenceRepository(db DBTX) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

func (r *PreferenceRepository) FindByUserID(ctx context.Context, userID string) (*entities.Preference, error) {
	var row preferenceRow
	err := r.db.QueryRow(ctx, getPreference, userID).Scan(&row.UserID, &row.TargetLang, &row.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPreferenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get preference by user id: %w", err)
	}
	p, err := preferenceToDomain(row)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PreferenceRepository) Upsert(ctx context.Context, pref *entities.Preference) error {
	_, err := r.db.Exec(ctx, upsertPreference,
		pref.UserID,
		pref.TargetLang.String(),
		timeToPgtypeTimestamptz(pref.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert preference: %w", err)
	}
	return nil
}
