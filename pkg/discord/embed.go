package discord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"transbot/internal/domain"
	"transbot/internal/domain/entities"
	"transbot/internal/ports/output"
)

// Component custom IDs of the translation panel.
const (
	SelectLanguageID = "select_target_lang"
	EditInputID      = "btn_edit_input"
	TranslateID      = "btn_translate"
	CloseID          = "btn_close"

	languageValuePrefix = "lang_"
)

const (
	embedColor        = 0x5865F2
	maxFieldLength    = 1024
	maxHistoryEntries = 10
)

// LanguageValue is the select menu value for option index.
func LanguageValue(index int) string {
	return languageValuePrefix + strconv.Itoa(index)
}

// ParseLanguageValue reverses LanguageValue.
func ParseLanguageValue(value string) (int, bool) {
	raw, ok := strings.CutPrefix(value, languageValuePrefix)
	if !ok {
		return 0, false
	}
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return index, true
}

// BuildPanelEmbed renders the screen; outputText is the already localized output buffer.
func BuildPanelEmbed(tr output.T, locale string, state entities.ScreenState, outputText string) *discordgo.MessageEmbed {
	status := tr.T(locale, "panel.status.waiting", nil)
	if state.Ready {
		status = tr.T(locale, "panel.status.ready", nil)
	}
	input := state.Input
	if strings.TrimSpace(input) == "" {
		input = tr.T(locale, "panel.input.empty", nil)
	}
	target := ""
	if state.Selected >= 0 && state.Selected < len(state.Options) {
		target = state.Target().Label
	}

	return &discordgo.MessageEmbed{
		Title: tr.T(locale, "panel.title", nil),
		Color: embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: tr.T(locale, "panel.field.target", nil), Value: fieldValue(target, maxFieldLength), Inline: true},
			{Name: tr.T(locale, "panel.field.status", nil), Value: status, Inline: true},
			{Name: tr.T(locale, "panel.field.input", nil), Value: fieldValue(input, maxFieldLength)},
			{Name: tr.T(locale, "panel.field.output", nil), Value: fieldValue(outputText, maxFieldLength)},
		},
	}
}

// BuildPanelComponents returns the language picker and the panel buttons.
// The translate button stays enabled while the engine warms up so the
// not-ready message can be shown.
func BuildPanelComponents(tr output.T, locale string, state entities.ScreenState) []discordgo.MessageComponent {
	options := make([]discordgo.SelectMenuOption, 0, len(state.Options))
	for i, opt := range state.Options {
		options = append(options, discordgo.SelectMenuOption{
			Label:   opt.Label,
			Value:   LanguageValue(i),
			Default: i == state.Selected,
		})
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				CustomID:    SelectLanguageID,
				Placeholder: tr.T(locale, "panel.select.placeholder", nil),
				Options:     options,
			},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: tr.T(locale, "panel.button.edit", nil), Style: discordgo.SecondaryButton, CustomID: EditInputID},
			discordgo.Button{Label: tr.T(locale, "panel.button.translate", nil), Style: discordgo.PrimaryButton, CustomID: TranslateID},
			discordgo.Button{Label: tr.T(locale, "panel.button.close", nil), Style: discordgo.DangerButton, CustomID: CloseID},
		}},
	}
}

// BuildHistoryEmbed lists records newest first.
func BuildHistoryEmbed(tr output.T, locale string, records []entities.TranslationRecord) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: tr.T(locale, "history.title", nil),
		Color: embedColor,
	}
	if len(records) == 0 {
		embed.Description = tr.T(locale, "history.empty", nil)
		return embed
	}
	if len(records) > maxHistoryEntries {
		records = records[:maxHistoryEntries]
	}
	for _, r := range records {
		value := r.OutputText
		if r.Status == domain.StatusFailed {
			value = fmt.Sprintf("❌ %s: %s", tr.T(locale, "history.failed", nil), r.OutputText)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  truncate(fmt.Sprintf("%s • %s→%s • %s", FormatTimestamp(r.CreatedAt), r.SourceLang, r.TargetLang, r.InputText), 256),
			Value: fieldValue(value, maxFieldLength),
		})
	}
	return embed
}

// fieldValue truncates s for an embed field. Discord rejects empty fields, so
// "" becomes a zero-width space.
func fieldValue(s string, max int) string {
	if s == "" {
		return "\u200b"
	}
	return truncate(s, max)
}

// truncate shortens s to at most max runes, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
