package discord

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"

	pkgdiscord "transbot/pkg/discord"
)

const historyLimit = 10

// HandleTranslateCommand opens (or brings back) the user's translation panel.
func (h *Handler) HandleTranslateCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	userID := interactionUserID(i)
	locale := h.locale(i.Interaction)

	state, err := h.translationUseCase.OpenScreen(ctx, userID)
	if err != nil {
		log.Printf("❌ opening screen failed (user=%s): %v", userID, err)
		respondEphemeral(s, i.Interaction, pkgdiscord.DomainErrorMessage(h.translator, locale, err))
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: h.panelData(locale, state),
	}); err != nil {
		log.Printf("⚠️ sending panel failed (user=%s): %v", userID, err)
		return
	}
	h.remember(userID, i.Interaction)
	h.catchUp(s, i.Interaction, userID, state)
}

// HandleHistoryCommand lists the user's recent translations.
func (h *Handler) HandleHistoryCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	userID := interactionUserID(i)
	locale := h.locale(i.Interaction)

	records, err := h.translationUseCase.History(ctx, userID, historyLimit)
	if err != nil {
		log.Printf("❌ loading history failed (user=%s): %v", userID, err)
		respondEphemeral(s, i.Interaction, h.translator.T(locale, "error.generic", nil))
		return
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{pkgdiscord.BuildHistoryEmbed(h.translator, locale, records)},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}
