package discord

import (
	"github.com/bwmarrin/discordgo"

	pkgdiscord "transbot/pkg/discord"
)

// HandleModalSubmit routes modals by CustomID.
func (h *Handler) HandleModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	switch data.CustomID {
	case pkgdiscord.InputModalID:
		h.handleInputModalSubmit(s, i, data)
	default:
		// Unknown modal: ignore.
	}
}
