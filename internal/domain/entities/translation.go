package entities

import (
	"time"

	"golang.org/x/text/language"
)

// OutcomeKind tells what ended up in the output buffer.
type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota
	OutcomeTranslated
	OutcomeNotReady
	OutcomeEmptyInput
	OutcomeFailed
	// OutcomeSuperseded is only ever returned to the caller; it is never written
	// to the output buffer.
	OutcomeSuperseded
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNone:
		return "none"
	case OutcomeTranslated:
		return "translated"
	case OutcomeNotReady:
		return "not_ready"
	case OutcomeEmptyInput:
		return "empty_input"
	case OutcomeFailed:
		return "failed"
	case OutcomeSuperseded:
		return "superseded"
	default:
		return "unknown"
	}
}

// TranslationResponse is what an engine session returns for one request.
type TranslationResponse struct {
	SourceText string
	TargetText string
}

// Outcome is the structured content of the output buffer.
type Outcome struct {
	Kind   OutcomeKind
	Input  string // text sent to the engine
	Text   string // translated text, OutcomeTranslated only
	Err    error  // domain.ErrEngineNotReady, domain.ErrEmptyInput or the engine failure
	Seq    uint64 // request sequence number, 0 when the engine was not contacted
	Target language.Tag
}

// Dispatched reports whether the engine was contacted for this outcome.
func (o Outcome) Dispatched() bool {
	return o.Kind == OutcomeTranslated || o.Kind == OutcomeFailed
}

// ScreenState is a snapshot of one translation screen.
type ScreenState struct {
	UserID    string
	Options   []LanguageOption
	Selected  int
	Ready     bool
	Input     string
	Output    Outcome
	UpdatedAt time.Time
}

// Target returns the currently selected option.
func (s ScreenState) Target() LanguageOption {
	return s.Options[s.Selected]
}

// Preference remembers the last target language picked by a user.
type Preference struct {
	UserID     string
	TargetLang language.Tag
	UpdatedAt  time.Time
}

// TranslationRecord is one dispatched request kept in the history.
type TranslationRecord struct {
	ID         uint
	UserID     string
	SourceLang string
	TargetLang string
	InputText  string
	OutputText string
	Status     string
	CreatedAt  time.Time
}
