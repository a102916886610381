package domain

import "errors"

// Domain errors.
var (
	ErrEngineNotReady      = errors.New("translation engine not ready")
	ErrEmptyInput          = errors.New("input text is empty")
	ErrInvalidLanguage     = errors.New("invalid target language")
	ErrScreenNotFound      = errors.New("translation screen not found")
	ErrPreferenceNotFound  = errors.New("preference not found")
	ErrUnsupportedPair     = errors.New("unsupported language pair")
	ErrInvalidLanguageList = errors.New("invalid language list")
)

// Record statuses stored with each dispatched translation.
const (
	StatusTranslated = "translated"
	StatusFailed     = "failed"
)

// EngineFailure wraps an error reported by the translation engine.
// Description is what the user gets to see.
type EngineFailure struct {
	Err error
}

func (e *EngineFailure) Error() string {
	return "translation failed: " + e.Description()
}

func (e *EngineFailure) Unwrap() error { return e.Err }

// Description returns the underlying engine error text.
func (e *EngineFailure) Description() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// Code returns a stable code for known domain errors, "" otherwise.
func Code(err error) string {
	var failure *EngineFailure
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEngineNotReady):
		return "engine_not_ready"
	case errors.Is(err, ErrEmptyInput):
		return "empty_input"
	case errors.Is(err, ErrInvalidLanguage):
		return "invalid_language"
	case errors.Is(err, ErrScreenNotFound):
		return "screen_not_found"
	case errors.Is(err, ErrPreferenceNotFound):
		return "preference_not_found"
	case errors.Is(err, ErrUnsupportedPair):
		return "unsupported_pair"
	case errors.As(err, &failure):
		return "engine_failure"
	default:
		return ""
	}
}
