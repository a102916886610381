package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	pkgdiscord "transbot/pkg/discord"
)

func (h *Handler) handleInputModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ModalSubmitInteractionData) {
	ctx := context.Background()
	userID := interactionUserID(i)
	locale := h.locale(i.Interaction)

	state, err := h.translationUseCase.SetInput(ctx, userID, pkgdiscord.ExtractTextInput(data))
	if err != nil {
		respondEphemeral(s, i.Interaction, pkgdiscord.DomainErrorMessage(h.translator, locale, err))
		return
	}

	h.remember(userID, i.Interaction)
	h.updatePanel(s, i.Interaction, state)
}
