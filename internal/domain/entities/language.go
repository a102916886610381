package entities

import (
	"fmt"

	"golang.org/x/text/language"

	"transbot/internal/domain"
)

// DefaultLanguageIndex selects English in DefaultLanguages.
const DefaultLanguageIndex = 2

// SourceLanguage is the fixed language every request is translated from.
var SourceLanguage = language.MustParse("zh-Hant")

// LanguageOption pairs a picker label with the target language it selects.
type LanguageOption struct {
	Label string
	Tag   language.Tag
}

// LanguagePair is the (source, target) pair a session is bound to.
type LanguagePair struct {
	Source language.Tag
	Target language.Tag
}

func (p LanguagePair) String() string {
	return p.Source.String() + "→" + p.Target.String()
}

// DefaultLanguages returns the five target languages offered by the picker, in display order.
func DefaultLanguages() []LanguageOption {
	return []LanguageOption{
		{Label: "ZH-TW 🇹🇼", Tag: language.MustParse("zh-Hant")},
		{Label: "ZH-CN 🇨🇳", Tag: language.MustParse("zh-Hans")},
		{Label: "English 🇬🇧🇺🇸", Tag: language.MustParse("en")},
		{Label: "Korean 🇰🇷🇰🇵", Tag: language.MustParse("ko")},
		{Label: "Japanese 🇯🇵", Tag: language.MustParse("ja")},
	}
}

// ValidateLanguages checks that options is non-empty, labels are unique and
// defaultIndex points into the list.
func ValidateLanguages(options []LanguageOption, defaultIndex int) error {
	if len(options) == 0 {
		return fmt.Errorf("%w: no options", domain.ErrInvalidLanguageList)
	}
	seen := make(map[string]struct{}, len(options))
	for _, opt := range options {
		if opt.Label == "" {
			return fmt.Errorf("%w: empty label", domain.ErrInvalidLanguageList)
		}
		if _, dup := seen[opt.Label]; dup {
			return fmt.Errorf("%w: duplicate label %q", domain.ErrInvalidLanguageList, opt.Label)
		}
		seen[opt.Label] = struct{}{}
	}
	if defaultIndex < 0 || defaultIndex >= len(options) {
		return fmt.Errorf("%w: default index %d out of range", domain.ErrInvalidLanguageList, defaultIndex)
	}
	return nil
}

// IndexOfTag returns the position of tag in options.
func IndexOfTag(options []LanguageOption, tag language.Tag) (int, bool) {
	for i, opt := range options {
		if opt.Tag == tag {
			return i, true
		}
	}
	return 0, false
}
