package discord

import (
	"transbot/internal/domain"
	"transbot/internal/ports/output"
)

// ErrorKey maps a domain error code to its catalogue key.
func ErrorKey(code string) string {
	switch code {
	case "screen_not_found":
		return "error.screen_not_found"
	case "invalid_language", "unsupported_pair":
		return "error.invalid_language"
	case "engine_not_ready":
		return "translate.not_ready"
	case "empty_input":
		return "translate.empty_input"
	default:
		return "error.generic"
	}
}

// DomainErrorMessage resolves err to a user-facing message in locale.
func DomainErrorMessage(tr output.T, locale string, err error) string {
	if err == nil {
		return ""
	}
	return tr.T(locale, ErrorKey(domain.Code(err)), nil)
}
