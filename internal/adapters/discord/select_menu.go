package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"transbot/internal/domain"
	pkgdiscord "transbot/pkg/discord"
)

// HandleSelectLanguage switches the panel's target language. The panel is
// redrawn right away in the waiting state; the ready refresh follows once the
// engine hands over the new session.
func (h *Handler) HandleSelectLanguage(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	userID := interactionUserID(i)
	locale := h.locale(i.Interaction)

	data := i.MessageComponentData()
	if len(data.Values) == 0 {
		return
	}
	index, ok := pkgdiscord.ParseLanguageValue(data.Values[0])
	if !ok {
		respondEphemeral(s, i.Interaction, pkgdiscord.DomainErrorMessage(h.translator, locale, domain.ErrInvalidLanguage))
		return
	}

	state, err := h.translationUseCase.SelectLanguage(ctx, userID, index)
	if err != nil {
		respondEphemeral(s, i.Interaction, pkgdiscord.DomainErrorMessage(h.translator, locale, err))
		return
	}

	h.updatePanel(s, i.Interaction, state)
	h.remember(userID, i.Interaction)
	h.catchUp(s, i.Interaction, userID, state)
}
