package discord

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"

	pkgdiscord "transbot/pkg/discord"
)

// HandleEditInput opens the text modal prefilled with the current input.
// An evicted screen is reopened so the panel keeps working.
func (h *Handler) HandleEditInput(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	userID := interactionUserID(i)
	locale := h.locale(i.Interaction)

	state, err := h.translationUseCase.OpenScreen(ctx, userID)
	if err != nil {
		respondEphemeral(s, i.Interaction, pkgdiscord.DomainErrorMessage(h.translator, locale, err))
		return
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: pkgdiscord.BuildInputModal(h.translator, locale, state.Input),
	})
}

// HandleTranslate acknowledges at once, runs the translation and edits the
// panel with the result. Several presses may overlap; the screen keeps the
// latest result.
func (h *Handler) HandleTranslate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	userID := interactionUserID(i)
	locale := h.locale(i.Interaction)

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}); err != nil {
		log.Printf("⚠️ deferring translate failed (user=%s): %v", userID, err)
		return
	}
	h.remember(userID, i.Interaction)

	state, err := h.translationUseCase.Translate(ctx, userID)
	if err != nil {
		followupEphemeral(s, i.Interaction, pkgdiscord.DomainErrorMessage(h.translator, locale, err))
		return
	}
	if err := h.editPanel(s, i.Interaction, locale, state); err != nil {
		log.Printf("⚠️ updating panel failed (user=%s): %v", userID, err)
	}
}

// HandleClose tears down the user's screen and clears the panel.
func (h *Handler) HandleClose(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	userID := interactionUserID(i)
	locale := h.locale(i.Interaction)

	if err := h.translationUseCase.CloseScreen(ctx, userID); err != nil {
		log.Printf("⚠️ closing screen (user=%s): %v", userID, err)
	}
	h.forget(userID)

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    h.translator.T(locale, "panel.closed", nil),
			Embeds:     []*discordgo.MessageEmbed{},
			Components: []discordgo.MessageComponent{},
		},
	})
}
