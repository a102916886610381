package input

import (
	"context"
	"time"

	"transbot/internal/domain/entities"
)

// TranslationUseCase drives the per-user translation screens.
type TranslationUseCase interface {
	OpenScreen(ctx context.Context, userID string) (entities.ScreenState, error)
	State(userID string) (entities.ScreenState, error)
	SelectLanguage(ctx context.Context, userID string, index int) (entities.ScreenState, error)
	SetInput(ctx context.Context, userID, text string) (entities.ScreenState, error)
	Translate(ctx context.Context, userID string) (entities.ScreenState, error)
	CloseScreen(ctx context.Context, userID string) error
	History(ctx context.Context, userID string, limit int) ([]entities.TranslationRecord, error)
	EvictIdle(now time.Time) []string
	OnSessionReady(fn func(entities.ScreenState))
	Message(locale string, outcome entities.Outcome) string
}
