package discord

import (
	"context"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"transbot/internal/domain/entities"
)

const evictInterval = time.Minute

// RunScheduledTasks evicts idle screens every minute until ctx is done.
func (h *Handler) RunScheduledTasks(ctx context.Context) {
	ticker := time.NewTicker(evictInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			h.evictIdle(now)
		}
	}
}

func (h *Handler) evictIdle(now time.Time) {
	for _, userID := range h.translationUseCase.EvictIdle(now) {
		h.forget(userID)
		log.Printf("🧹 screen evicted (user=%s)", userID)
	}
}

// refreshPanel redraws a panel when its engine session becomes ready.
func (h *Handler) refreshPanel(s *discordgo.Session, state entities.ScreenState) {
	p, ok := h.lookup(state.UserID)
	if !ok {
		return
	}
	if err := h.editPanel(s, p.interaction, p.locale, state); err != nil {
		log.Printf("⚠️ refreshing panel failed (user=%s): %v", state.UserID, err)
	}
}

// catchUp covers a session that became ready while the panel was being sent,
// before the interaction was remembered.
func (h *Handler) catchUp(s *discordgo.Session, i *discordgo.Interaction, userID string, shown entities.ScreenState) {
	if shown.Ready {
		return
	}
	state, err := h.translationUseCase.State(userID)
	if err != nil || !state.Ready {
		return
	}
	if err := h.editPanel(s, i, h.locale(i), state); err != nil {
		log.Printf("⚠️ refreshing panel failed (user=%s): %v", userID, err)
	}
}
