package application

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"

	"transbot/internal/domain"
	"transbot/internal/domain/entities"
	"transbot/internal/ports/output"
)

// Coordinator owns the state of one translation screen: the selected target
// language, the session bound to it, and the input/output buffers.
//
// The session is replaced every time the target changes. Between the change
// and the engine delivering the new session the screen has no session, and
// translations report OutcomeNotReady. Each translate request is numbered;
// only the latest request may write the output buffer.
type Coordinator struct {
	engine   output.Engine
	source   language.Tag
	options  []entities.LanguageOption
	observer func(entities.ScreenState)
	userID   string

	mu            sync.Mutex
	baseCtx       context.Context
	started       bool
	closed        bool
	selected      int
	session       output.Session
	generation    uint64 // bumped on every target change and on Close
	cancelAcquire context.CancelFunc
	seq           uint64 // last translate request
	input         string
	output        entities.Outcome
	updatedAt     time.Time
}

type CoordinatorOption func(*Coordinator)

// WithLanguages replaces the default picker options.
func WithLanguages(options []entities.LanguageOption) CoordinatorOption {
	return func(c *Coordinator) { c.options = options }
}

// WithSourceLanguage replaces the fixed source language.
func WithSourceLanguage(tag language.Tag) CoordinatorOption {
	return func(c *Coordinator) { c.source = tag }
}

// WithInitialIndex sets the selection the screen opens with.
func WithInitialIndex(index int) CoordinatorOption {
	return func(c *Coordinator) { c.selected = index }
}

// WithSessionObserver is called, outside the lock, each time a session is installed.
func WithSessionObserver(fn func(entities.ScreenState)) CoordinatorOption {
	return func(c *Coordinator) { c.observer = fn }
}

// WithUserID tags snapshots with the owning user.
func WithUserID(userID string) CoordinatorOption {
	return func(c *Coordinator) { c.userID = userID }
}

func NewCoordinator(engine output.Engine, opts ...CoordinatorOption) (*Coordinator, error) {
	if engine == nil {
		return nil, fmt.Errorf("coordinator: engine is required")
	}
	c := &Coordinator{
		engine:    engine,
		source:    entities.SourceLanguage,
		options:   entities.DefaultLanguages(),
		selected:  entities.DefaultLanguageIndex,
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := entities.ValidateLanguages(c.options, c.selected); err != nil {
		return nil, fmt.Errorf("coordinator: %w", err)
	}
	return c, nil
}

// Start requests the first session. ctx bounds every session acquisition made
// by this coordinator. Calling Start again is a no-op.
func (c *Coordinator) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started || c.closed {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.baseCtx = ctx
	gen, actx, pair := c.beginAcquireLocked()
	c.mu.Unlock()

	c.requestSession(actx, gen, pair)
}

// SelectLanguage switches the target language. The current session is dropped
// and exactly one new session is requested. Selecting the current index does
// nothing.
func (c *Coordinator) SelectLanguage(index int) error {
	c.mu.Lock()
	if index < 0 || index >= len(c.options) {
		c.mu.Unlock()
		return fmt.Errorf("%w: index %d", domain.ErrInvalidLanguage, index)
	}
	if index == c.selected || c.closed {
		c.mu.Unlock()
		return nil
	}
	c.selected = index
	c.session = nil
	c.touchLocked()
	if !c.started {
		// Start will request the session for the new selection.
		c.mu.Unlock()
		return nil
	}
	gen, actx, pair := c.beginAcquireLocked()
	c.mu.Unlock()

	c.requestSession(actx, gen, pair)
	return nil
}

// SetInput replaces the input buffer.
func (c *Coordinator) SetInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = text
	c.touchLocked()
}

// Translate sends the input buffer through the current session and writes the
// result to the output buffer. Engine errors never escape: they are recorded
// as OutcomeFailed. A result that lost the race against a newer request or a
// target change is dropped and reported as OutcomeSuperseded.
func (c *Coordinator) Translate(ctx context.Context) entities.Outcome {
	c.mu.Lock()
	// Every press takes a number, so a guard result also supersedes any
	// request still in flight.
	c.seq++
	if c.session == nil || c.closed {
		out := entities.Outcome{Kind: entities.OutcomeNotReady, Err: domain.ErrEngineNotReady, Target: c.options[c.selected].Tag}
		c.writeLocked(out)
		c.mu.Unlock()
		return out
	}
	if strings.TrimSpace(c.input) == "" {
		out := entities.Outcome{Kind: entities.OutcomeEmptyInput, Err: domain.ErrEmptyInput, Target: c.options[c.selected].Tag}
		c.writeLocked(out)
		c.mu.Unlock()
		return out
	}
	seq := c.seq
	gen := c.generation
	session := c.session
	text := c.input
	target := session.Pair().Target
	c.mu.Unlock()

	resp, err := session.Translate(ctx, text)

	out := entities.Outcome{Kind: entities.OutcomeTranslated, Input: text, Text: resp.TargetText, Seq: seq, Target: target}
	if err != nil {
		out = entities.Outcome{Kind: entities.OutcomeFailed, Input: text, Err: &domain.EngineFailure{Err: err}, Seq: seq, Target: target}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq || gen != c.generation {
		superseded := out
		superseded.Kind = entities.OutcomeSuperseded
		return superseded
	}
	c.writeLocked(out)
	return out
}

// State returns a snapshot of the screen.
func (c *Coordinator) State() entities.ScreenState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Close tears the screen down. Pending acquisitions are cancelled and late
// sessions are ignored.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.session = nil
	c.generation++
	if c.cancelAcquire != nil {
		c.cancelAcquire()
		c.cancelAcquire = nil
	}
}

// beginAcquireLocked starts a new session generation and cancels the previous
// acquisition.
func (c *Coordinator) beginAcquireLocked() (uint64, context.Context, entities.LanguagePair) {
	c.generation++
	if c.cancelAcquire != nil {
		c.cancelAcquire()
	}
	actx, cancel := context.WithCancel(c.baseCtx)
	c.cancelAcquire = cancel
	pair := entities.LanguagePair{Source: c.source, Target: c.options[c.selected].Tag}
	return c.generation, actx, pair
}

func (c *Coordinator) requestSession(ctx context.Context, gen uint64, pair entities.LanguagePair) {
	err := c.engine.RequestSession(ctx, pair, func(s output.Session) {
		c.install(gen, pair, s)
	})
	if err != nil {
		log.Printf("⚠️ session request failed (user=%s, pair=%s): %v", c.userID, pair, err)
	}
}

func (c *Coordinator) install(gen uint64, pair entities.LanguagePair, s output.Session) {
	if s == nil {
		return
	}
	c.mu.Lock()
	if c.closed || gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.session = s
	c.touchLocked()
	state := c.stateLocked()
	observer := c.observer
	c.mu.Unlock()

	log.Printf("✅ session ready (user=%s, pair=%s)", c.userID, pair)
	if observer != nil {
		observer(state)
	}
}

func (c *Coordinator) writeLocked(out entities.Outcome) {
	c.output = out
	c.touchLocked()
}

func (c *Coordinator) touchLocked() {
	c.updatedAt = time.Now()
}

func (c *Coordinator) stateLocked() entities.ScreenState {
	options := make([]entities.LanguageOption, len(c.options))
	copy(options, c.options)
	return entities.ScreenState{
		UserID:    c.userID,
		Options:   options,
		Selected:  c.selected,
		Ready:     c.session != nil,
		Input:     c.input,
		Output:    c.output,
		UpdatedAt: c.updatedAt,
	}
}
