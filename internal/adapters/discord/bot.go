package discord

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"transbot/internal/config"
	"transbot/internal/domain/entities"
	"transbot/internal/ports/input"
	"transbot/internal/ports/output"
	pkgdiscord "transbot/pkg/discord"
)

const (
	translateCommand = "translate"
	historyCommand   = "history"
)

// Bot is the Discord adapter.
type Bot struct {
	session    *discordgo.Session
	config     *config.Config
	handler    *Handler
	translator output.T
}

// NewBot creates a Bot around the translation use case and hooks session-ready
// notifications to panel refreshes.
func NewBot(cfg *config.Config, translationUC input.TranslationUseCase, translator output.T) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	handler := NewHandler(translationUC, translator, cfg.DefaultLocale)
	translationUC.OnSessionReady(func(state entities.ScreenState) {
		handler.refreshPanel(s, state)
	})

	bot := &Bot{
		session:    s,
		config:     cfg,
		handler:    handler,
		translator: translator,
	}
	bot.setupHandlers()
	return bot, nil
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.handleInteraction)
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case translateCommand:
			b.handler.HandleTranslateCommand(s, i)
		case historyCommand:
			b.handler.HandleHistoryCommand(s, i)
		}
	case discordgo.InteractionModalSubmit:
		b.handler.HandleModalSubmit(s, i)
	case discordgo.InteractionMessageComponent:
		switch i.MessageComponentData().CustomID {
		case pkgdiscord.SelectLanguageID:
			b.handler.HandleSelectLanguage(s, i)
		case pkgdiscord.EditInputID:
			b.handler.HandleEditInput(s, i)
		case pkgdiscord.TranslateID:
			b.handler.HandleTranslate(s, i)
		case pkgdiscord.CloseID:
			b.handler.HandleClose(s, i)
		}
	}
}

// commands describes the slash commands in the default locale, with English
// and Traditional Chinese localizations.
func (b *Bot) commands() []*discordgo.ApplicationCommand {
	describe := func(key string) (string, *map[discordgo.Locale]string) {
		localized := map[discordgo.Locale]string{
			discordgo.EnglishUS: b.translator.T("en", key, nil),
			discordgo.EnglishGB: b.translator.T("en", key, nil),
			discordgo.ChineseTW: b.translator.T("zh-Hant", key, nil),
		}
		return b.translator.T(b.config.DefaultLocale, key, nil), &localized
	}

	translateDesc, translateLoc := describe("command.translate.description")
	historyDesc, historyLoc := describe("command.history.description")
	return []*discordgo.ApplicationCommand{
		{Name: translateCommand, Description: translateDesc, DescriptionLocalizations: translateLoc},
		{Name: historyCommand, Description: historyDesc, DescriptionLocalizations: historyLoc},
	}
}

// Start connects to Discord, registers the commands and runs until ctx is done.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer b.session.Close()

	for _, cmd := range b.commands() {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd); err != nil {
			log.Printf("⚠️ registering command %s failed: %v", cmd.Name, err)
		}
	}

	go b.handler.RunScheduledTasks(ctx)

	log.Println("🤖 Bot online! Press CTRL+C to quit.")
	<-ctx.Done()
	return nil
}
