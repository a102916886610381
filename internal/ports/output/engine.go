package output

import (
	"context"

	"transbot/internal/domain/entities"
)

// Session is a translation capability bound to one language pair.
type Session interface {
	Pair() entities.LanguagePair
	Translate(ctx context.Context, text string) (entities.TranslationResponse, error)
}

// SessionListener receives the session once the engine has prepared it.
type SessionListener func(Session)

// Engine hands out sessions. The engine decides when a session is ready and
// delivers it through ready, possibly from another goroutine and possibly
// before RequestSession returns. A returned error means no session will follow.
type Engine interface {
	RequestSession(ctx context.Context, pair entities.LanguagePair, ready SessionListener) error
}
