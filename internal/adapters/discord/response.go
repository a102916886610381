package discord

import (
	"github.com/bwmarrin/discordgo"

	"transbot/internal/domain/entities"
	pkgdiscord "transbot/pkg/discord"
)

// interactionUserID works both in guilds (Member) and in DMs (User).
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func respondEphemeral(s *discordgo.Session, i *discordgo.Interaction, content string) {
	_ = s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func followupEphemeral(s *discordgo.Session, i *discordgo.Interaction, content string) {
	_, _ = s.FollowupMessageCreate(i, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
}

// panelData renders the whole panel for state.
func (h *Handler) panelData(locale string, state entities.ScreenState) *discordgo.InteractionResponseData {
	outputText := h.translationUseCase.Message(locale, state.Output)
	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{pkgdiscord.BuildPanelEmbed(h.translator, locale, state, outputText)},
		Components: pkgdiscord.BuildPanelComponents(h.translator, locale, state),
		Flags:      discordgo.MessageFlagsEphemeral,
	}
}

// updatePanel answers a component or modal interaction by redrawing the panel in place.
func (h *Handler) updatePanel(s *discordgo.Session, i *discordgo.Interaction, state entities.ScreenState) {
	data := h.panelData(h.locale(i), state)
	data.Flags = 0
	_ = s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	})
}

// editPanel rewrites a panel already answered through interaction i.
func (h *Handler) editPanel(s *discordgo.Session, i *discordgo.Interaction, locale string, state entities.ScreenState) error {
	data := h.panelData(locale, state)
	_, err := s.InteractionResponseEdit(i, &discordgo.WebhookEdit{
		Embeds:     &data.Embeds,
		Components: &data.Components,
	})
	return err
}
