package output

import (
	"context"

	"transbot/internal/domain/entities"
)

type HistoryRepository interface {
	Create(ctx context.Context, record *entities.TranslationRecord) error
	FindRecentByUserID(ctx context.Context, userID string, limit int) ([]entities.TranslationRecord, error)
}
