package discord

import (
	"sync"

	"github.com/bwmarrin/discordgo"

	"transbot/internal/ports/input"
	"transbot/internal/ports/output"
)

// panel is the last interaction that rendered a user's panel. Its token lets
// us edit the ephemeral message later (valid for 15 minutes).
type panel struct {
	interaction *discordgo.Interaction
	locale      string
}

// Handler handles Discord interactions using use cases.
type Handler struct {
	translationUseCase input.TranslationUseCase
	translator         output.T
	defaultLocale      string

	mu     sync.Mutex
	panels map[string]panel
}

// NewHandler creates a Handler.
func NewHandler(
	translationUseCase input.TranslationUseCase,
	translator output.T,
	defaultLocale string,
) *Handler {
	return &Handler{
		translationUseCase: translationUseCase,
		translator:         translator,
		defaultLocale:      defaultLocale,
		panels:             make(map[string]panel),
	}
}

func (h *Handler) remember(userID string, i *discordgo.Interaction) {
	if userID == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.panels[userID] = panel{interaction: i, locale: h.locale(i)}
}

func (h *Handler) forget(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.panels, userID)
}

func (h *Handler) lookup(userID string) (panel, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.panels[userID]
	return p, ok
}

// locale is the user's client locale, or the configured default.
func (h *Handler) locale(i *discordgo.Interaction) string {
	if i != nil && i.Locale != "" {
		return string(i.Locale)
	}
	return h.defaultLocale
}
