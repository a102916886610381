package output

import (
	"context"

	"transbot/internal/domain/entities"
)

type PreferenceRepository interface {
	FindByUserID(ctx context.Context, userID string) (*entities.Preference, error)
	Upsert(ctx context.Context, pref *entities.Preference) error
}
