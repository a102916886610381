package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"transbot/internal/domain"
	"transbot/internal/domain/entities"
	"transbot/internal/ports/input"
	"transbot/internal/ports/output"
)

var _ input.TranslationUseCase = (*ScreenService)(nil)

const (
	defaultTranslateTimeout = 15 * time.Second
	defaultIdleTimeout      = 30 * time.Minute
)

type screen struct {
	coordinator *Coordinator
	lastUsed    time.Time
}

// ScreenService keeps one Coordinator per user and persists what outlives a
// screen: the last picked language and the translation history.
type ScreenService struct {
	engine           output.Engine
	preferenceRepo   output.PreferenceRepository
	historyRepo      output.HistoryRepository
	translator       output.T
	translateTimeout time.Duration
	idleTimeout      time.Duration
	baseCtx          context.Context

	mu      sync.Mutex
	screens map[string]*screen
	onReady func(entities.ScreenState)
	nowFunc func() time.Time
}

type ScreenOption func(*ScreenService)

func WithTranslateTimeout(d time.Duration) ScreenOption {
	return func(s *ScreenService) {
		if d > 0 {
			s.translateTimeout = d
		}
	}
}

func WithIdleTimeout(d time.Duration) ScreenOption {
	return func(s *ScreenService) {
		if d > 0 {
			s.idleTimeout = d
		}
	}
}

// WithBaseContext bounds all session acquisitions; cancel it on shutdown.
func WithBaseContext(ctx context.Context) ScreenOption {
	return func(s *ScreenService) { s.baseCtx = ctx }
}

func NewScreenService(
	engine output.Engine,
	preferenceRepo output.PreferenceRepository,
	historyRepo output.HistoryRepository,
	translator output.T,
	opts ...ScreenOption,
) *ScreenService {
	s := &ScreenService{
		engine:           engine,
		preferenceRepo:   preferenceRepo,
		historyRepo:      historyRepo,
		translator:       translator,
		translateTimeout: defaultTranslateTimeout,
		idleTimeout:      defaultIdleTimeout,
		baseCtx:          context.Background(),
		screens:          make(map[string]*screen),
		nowFunc:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnSessionReady registers fn to be told when a screen's session becomes usable.
func (s *ScreenService) OnSessionReady(fn func(entities.ScreenState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReady = fn
}

// OpenScreen returns the user's screen, creating it with the user's last
// picked language when there is none yet.
func (s *ScreenService) OpenScreen(ctx context.Context, userID string) (entities.ScreenState, error) {
	s.mu.Lock()
	if sc, ok := s.screens[userID]; ok {
		sc.lastUsed = s.nowFunc()
		s.mu.Unlock()
		return sc.coordinator.State(), nil
	}
	s.mu.Unlock()

	index := s.preferredIndex(ctx, userID)
	c, err := NewCoordinator(s.engine,
		WithUserID(userID),
		WithInitialIndex(index),
		WithSessionObserver(s.notifyReady),
	)
	if err != nil {
		return entities.ScreenState{}, err
	}

	s.mu.Lock()
	if sc, ok := s.screens[userID]; ok {
		// Lost a race with a concurrent open.
		sc.lastUsed = s.nowFunc()
		s.mu.Unlock()
		return sc.coordinator.State(), nil
	}
	s.screens[userID] = &screen{coordinator: c, lastUsed: s.nowFunc()}
	s.mu.Unlock()

	c.Start(s.baseCtx)
	return c.State(), nil
}

// State returns the user's screen without creating it or counting as use.
func (s *ScreenService) State(userID string) (entities.ScreenState, error) {
	s.mu.Lock()
	sc, ok := s.screens[userID]
	s.mu.Unlock()
	if !ok {
		return entities.ScreenState{}, domain.ErrScreenNotFound
	}
	return sc.coordinator.State(), nil
}

func (s *ScreenService) SelectLanguage(ctx context.Context, userID string, index int) (entities.ScreenState, error) {
	c, err := s.coordinator(userID)
	if err != nil {
		return entities.ScreenState{}, err
	}
	if err := c.SelectLanguage(index); err != nil {
		return c.State(), err
	}
	state := c.State()
	if s.preferenceRepo != nil {
		pref := &entities.Preference{UserID: userID, TargetLang: state.Target().Tag, UpdatedAt: s.nowFunc()}
		if err := s.preferenceRepo.Upsert(ctx, pref); err != nil {
			log.Printf("⚠️ saving preference failed (user=%s): %v", userID, err)
		}
	}
	return state, nil
}

func (s *ScreenService) SetInput(ctx context.Context, userID, text string) (entities.ScreenState, error) {
	c, err := s.coordinator(userID)
	if err != nil {
		return entities.ScreenState{}, err
	}
	c.SetInput(text)
	return c.State(), nil
}

// Translate runs one translation for the user's screen. The outcome is in the
// returned state's Output; it is never reported as an error.
func (s *ScreenService) Translate(ctx context.Context, userID string) (entities.ScreenState, error) {
	c, err := s.coordinator(userID)
	if err != nil {
		return entities.ScreenState{}, err
	}
	tctx, cancel := context.WithTimeout(ctx, s.translateTimeout)
	defer cancel()
	out := c.Translate(tctx)

	if out.Dispatched() {
		s.record(ctx, userID, out)
	}
	return c.State(), nil
}

func (s *ScreenService) CloseScreen(ctx context.Context, userID string) error {
	s.mu.Lock()
	sc, ok := s.screens[userID]
	delete(s.screens, userID)
	s.mu.Unlock()
	if !ok {
		return domain.ErrScreenNotFound
	}
	sc.coordinator.Close()
	return nil
}

func (s *ScreenService) History(ctx context.Context, userID string, limit int) ([]entities.TranslationRecord, error) {
	if s.historyRepo == nil {
		return nil, nil
	}
	records, err := s.historyRepo.FindRecentByUserID(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("find history: %w", err)
	}
	return records, nil
}

// EvictIdle closes screens unused since before now minus the idle timeout and
// returns their user IDs.
func (s *ScreenService) EvictIdle(now time.Time) []string {
	s.mu.Lock()
	var evicted []*screen
	var users []string
	for userID, sc := range s.screens {
		if now.Sub(sc.lastUsed) > s.idleTimeout {
			evicted = append(evicted, sc)
			users = append(users, userID)
			delete(s.screens, userID)
		}
	}
	s.mu.Unlock()

	for _, sc := range evicted {
		sc.coordinator.Close()
	}
	return users
}

// Message renders an outcome for the output buffer.
func (s *ScreenService) Message(locale string, outcome entities.Outcome) string {
	switch outcome.Kind {
	case entities.OutcomeTranslated:
		return outcome.Text
	case entities.OutcomeNotReady:
		return s.translator.T(locale, "translate.not_ready", nil)
	case entities.OutcomeEmptyInput:
		return s.translator.T(locale, "translate.empty_input", nil)
	case entities.OutcomeFailed:
		return s.translator.T(locale, "translate.failed", map[string]any{"Description": failureDescription(outcome.Err)})
	default:
		return s.translator.T(locale, "output.initial", nil)
	}
}

func (s *ScreenService) coordinator(userID string) (*Coordinator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.screens[userID]
	if !ok {
		return nil, domain.ErrScreenNotFound
	}
	sc.lastUsed = s.nowFunc()
	return sc.coordinator, nil
}

func (s *ScreenService) preferredIndex(ctx context.Context, userID string) int {
	if s.preferenceRepo == nil {
		return entities.DefaultLanguageIndex
	}
	pref, err := s.preferenceRepo.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrPreferenceNotFound) {
			log.Printf("⚠️ loading preference failed (user=%s): %v", userID, err)
		}
		return entities.DefaultLanguageIndex
	}
	if i, ok := entities.IndexOfTag(entities.DefaultLanguages(), pref.TargetLang); ok {
		return i
	}
	return entities.DefaultLanguageIndex
}

func (s *ScreenService) record(ctx context.Context, userID string, out entities.Outcome) {
	if s.historyRepo == nil {
		return
	}
	rec := &entities.TranslationRecord{
		UserID:     userID,
		SourceLang: entities.SourceLanguage.String(),
		TargetLang: out.Target.String(),
		InputText:  out.Input,
		OutputText: out.Text,
		Status:     domain.StatusTranslated,
		CreatedAt:  s.nowFunc(),
	}
	if out.Kind == entities.OutcomeFailed {
		rec.Status = domain.StatusFailed
		rec.OutputText = failureDescription(out.Err)
	}
	if err := s.historyRepo.Create(ctx, rec); err != nil {
		log.Printf("⚠️ saving history failed (user=%s): %v", userID, err)
	}
}

func (s *ScreenService) notifyReady(state entities.ScreenState) {
	s.mu.Lock()
	fn := s.onReady
	s.mu.Unlock()
	if fn != nil {
		fn(state)
	}
}

func failureDescription(err error) string {
	var failure *domain.EngineFailure
	if errors.As(err, &failure) {
		return failure.Description()
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
