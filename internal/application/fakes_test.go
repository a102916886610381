package application

import (
	"context"
	"sync"

	"transbot/internal/domain"
	"transbot/internal/domain/entities"
	"transbot/internal/ports/output"
)

type sessionRequest struct {
	ctx   context.Context
	pair  entities.LanguagePair
	ready output.SessionListener
}

// fakeEngine records session requests. With auto set, it delivers a session
// synchronously; otherwise the test calls deliver.
type fakeEngine struct {
	mu        sync.Mutex
	requests  []sessionRequest
	auto      bool
	translate func(ctx context.Context, pair entities.LanguagePair, text string) (entities.TranslationResponse, error)
}

func (e *fakeEngine) RequestSession(ctx context.Context, pair entities.LanguagePair, ready output.SessionListener) error {
	e.mu.Lock()
	e.requests = append(e.requests, sessionRequest{ctx: ctx, pair: pair, ready: ready})
	auto := e.auto
	e.mu.Unlock()
	if auto {
		ready(e.newSession(pair))
	}
	return nil
}

func (e *fakeEngine) newSession(pair entities.LanguagePair) *fakeSession {
	return &fakeSession{pair: pair, translate: e.translate}
}

func (e *fakeEngine) requestCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.requests)
}

func (e *fakeEngine) request(i int) sessionRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.requests[i]
}

// deliver hands the session for request i to the coordinator.
func (e *fakeEngine) deliver(i int) *fakeSession {
	req := e.request(i)
	s := e.newSession(req.pair)
	req.ready(s)
	return s
}

type fakeSession struct {
	pair      entities.LanguagePair
	translate func(ctx context.Context, pair entities.LanguagePair, text string) (entities.TranslationResponse, error)

	mu    sync.Mutex
	calls []string
}

func (s *fakeSession) Pair() entities.LanguagePair { return s.pair }

func (s *fakeSession) Translate(ctx context.Context, text string) (entities.TranslationResponse, error) {
	s.mu.Lock()
	s.calls = append(s.calls, text)
	s.mu.Unlock()
	if s.translate != nil {
		return s.translate(ctx, s.pair, text)
	}
	return entities.TranslationResponse{SourceText: text, TargetText: "[" + s.pair.Target.String() + "] " + text}, nil
}

func (s *fakeSession) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// fakeT returns the zh-Hant catalogue entries the tests rely on.
type fakeT struct{}

func (fakeT) T(locale, key string, data map[string]any) string {
	switch key {
	case "translate.not_ready":
		return "翻譯引擎未就緒，請稍後。"
	case "translate.empty_input":
		return "請先輸入文字。"
	case "translate.failed":
		desc, _ := data["Description"].(string)
		return "翻譯失敗：" + desc
	case "output.initial":
		return "Hello"
	default:
		return key
	}
}

type fakePreferenceRepo struct {
	mu    sync.Mutex
	prefs map[string]entities.Preference
}

func newFakePreferenceRepo() *fakePreferenceRepo {
	return &fakePreferenceRepo{prefs: map[string]entities.Preference{}}
}

func (r *fakePreferenceRepo) FindByUserID(ctx context.Context, userID string) (*entities.Preference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.prefs[userID]
	if !ok {
		return nil, domain.ErrPreferenceNotFound
	}
	return &p, nil
}

func (r *fakePreferenceRepo) Upsert(ctx context.Context, pref *entities.Preference) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefs[pref.UserID] = *pref
	return nil
}

type fakeHistoryRepo struct {
	mu      sync.Mutex
	records []entities.TranslationRecord
}

func (r *fakeHistoryRepo) Create(ctx context.Context, record *entities.TranslationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record.ID = uint(len(r.records) + 1)
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeHistoryRepo) FindRecentByUserID(ctx context.Context, userID string, limit int) ([]entities.TranslationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.TranslationRecord
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		if r.records[i].UserID == userID {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}
