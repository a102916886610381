package engine

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/text/language"

	"transbot/internal/domain"
	"transbot/internal/domain/entities"
	"transbot/internal/ports/output"
)

var _ output.Engine = (*DictionaryEngine)(nil)

// DictionaryConfig configures the dictionary engine.
type DictionaryConfig struct {
	// ReadyDelay simulates the time it takes to prepare a session.
	ReadyDelay time.Duration
	// ProcessingDelay simulates translation time.
	ProcessingDelay time.Duration
	// Dictionary maps target tag → source text → translated text.
	// Unknown text is returned as "[tag] text".
	Dictionary map[string]map[string]string
	// Targets lists the supported target languages. Empty means all.
	Targets []language.Tag
}

// DefaultDictionaryConfig returns a small zh-Hant phrasebook for local runs.
func DefaultDictionaryConfig() *DictionaryConfig {
	return &DictionaryConfig{
		ReadyDelay:      300 * time.Millisecond,
		ProcessingDelay: 100 * time.Millisecond,
		Dictionary: map[string]map[string]string{
			"en": {
				"你好":    "Hello",
				"謝謝":    "Thank you",
				"早安":    "Good morning",
				"再見":    "Goodbye",
				"Hello": "Hello",
			},
			"ja": {
				"你好":    "こんにちは",
				"謝謝":    "ありがとう",
				"早安":    "おはようございます",
				"再見":    "さようなら",
				"Hello": "こんにちは",
			},
			"ko": {
				"你好":    "안녕하세요",
				"謝謝":    "감사합니다",
				"早安":    "좋은 아침입니다",
				"再見":    "안녕히 가세요",
				"Hello": "안녕하세요",
			},
			"zh-Hans": {
				"你好": "你好",
				"謝謝": "谢谢",
				"早安": "早安",
				"再見": "再见",
			},
		},
	}
}

// DictionaryEngine is a deterministic engine backed by an in-memory phrasebook.
type DictionaryEngine struct {
	config *DictionaryConfig
}

// NewDictionaryEngine creates a dictionary engine; a nil config uses the defaults.
func NewDictionaryEngine(config *DictionaryConfig) *DictionaryEngine {
	if config == nil {
		config = DefaultDictionaryConfig()
	}
	return &DictionaryEngine{config: config}
}

// RequestSession delivers a session after ReadyDelay, unless ctx is cancelled first.
func (e *DictionaryEngine) RequestSession(ctx context.Context, pair entities.LanguagePair, ready output.SessionListener) error {
	if !e.supports(pair.Target) {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedPair, pair)
	}
	session := &dictionarySession{pair: pair, config: e.config}
	go func() {
		if e.config.ReadyDelay > 0 {
			select {
			case <-time.After(e.config.ReadyDelay):
			case <-ctx.Done():
				return
			}
		}
		if ctx.Err() != nil {
			return
		}
		ready(session)
	}()
	return nil
}

func (e *DictionaryEngine) supports(target language.Tag) bool {
	if len(e.config.Targets) == 0 {
		return true
	}
	for _, t := range e.config.Targets {
		if t == target {
			return true
		}
	}
	return false
}

type dictionarySession struct {
	pair   entities.LanguagePair
	config *DictionaryConfig
}

func (s *dictionarySession) Pair() entities.LanguagePair { return s.pair }

func (s *dictionarySession) Translate(ctx context.Context, text string) (entities.TranslationResponse, error) {
	if s.config.ProcessingDelay > 0 {
		select {
		case <-time.After(s.config.ProcessingDelay):
		case <-ctx.Done():
			return entities.TranslationResponse{}, ctx.Err()
		}
	}
	return entities.TranslationResponse{
		SourceText: text,
		TargetText: s.lookup(text),
	}, nil
}

func (s *dictionarySession) lookup(text string) string {
	target := s.pair.Target.String()
	if dict, ok := s.config.Dictionary[target]; ok {
		if translated, ok := dict[text]; ok {
			return translated
		}
	}
	return "[" + target + "] " + text
}
