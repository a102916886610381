package discord

import (
	"github.com/bwmarrin/discordgo"

	"transbot/internal/ports/output"
)

const (
	// InputModalID identifies the text entry modal.
	InputModalID = "input_modal"
	inputFieldID = "input_text"
	// Discord caps text input values at 4000 characters.
	maxInputLength = 4000
)

// BuildInputModal returns the modal used to edit the input buffer, prefilled with current.
func BuildInputModal(tr output.T, locale, current string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: InputModalID,
		Title:    tr.T(locale, "modal.title", nil),
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    inputFieldID,
					Label:       tr.T(locale, "modal.input.label", nil),
					Style:       discordgo.TextInputParagraph,
					Required:    false,
					MaxLength:   maxInputLength,
					Placeholder: tr.T(locale, "modal.input.placeholder", nil),
					Value:       truncate(current, maxInputLength),
				},
			}},
		},
	}
}

// ExtractTextInput returns the value of the input modal's text field.
func ExtractTextInput(data discordgo.ModalSubmitInteractionData) string {
	for _, c := range data.Components {
		row, ok := c.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, rc := range row.Components {
			if input, ok := rc.(*discordgo.TextInput); ok && input.CustomID == inputFieldID {
				return input.Value
			}
		}
	}
	return ""
}
