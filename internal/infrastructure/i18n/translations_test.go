package i18n

import "testing"

func TestTranslator_T(t *testing.T) {
	t.Parallel()

	tr := NewTranslator("zh-Hant")

	tests := []struct {
		name   string
		locale string
		key    string
		data   map[string]any
		want   string
	}{
		{name: "default locale", locale: "", key: "translate.not_ready", want: "翻譯引擎未就緒，請稍後。"},
		{name: "explicit zh-Hant", locale: "zh-Hant", key: "translate.empty_input", want: "請先輸入文字。"},
		{name: "template", locale: "zh-Hant", key: "translate.failed", data: map[string]any{"Description": "network unavailable"}, want: "翻譯失敗：network unavailable"},
		{name: "english", locale: "en", key: "translate.empty_input", want: "Please enter some text first."},
		{name: "english template", locale: "en-US", key: "translate.failed", data: map[string]any{"Description": "timeout"}, want: "Translation failed: timeout"},
		{name: "unsupported locale falls back", locale: "fr", key: "translate.empty_input", want: "請先輸入文字。"},
		{name: "unknown key", locale: "en", key: "does.not.exist", want: "does.not.exist"},
		{name: "empty key", locale: "en", key: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.T(tt.locale, tt.key, tt.data); got != tt.want {
				t.Errorf("T(%q, %q) = %q, want %q", tt.locale, tt.key, got, tt.want)
			}
		})
	}
}

func TestNewTranslator_InvalidLocale(t *testing.T) {
	t.Parallel()

	tr := NewTranslator("not a locale!")
	if got := tr.T("", "translate.empty_input", nil); got != "請先輸入文字。" {
		t.Errorf("T() with unparsable default = %q, want the zh-Hant message", got)
	}
}
