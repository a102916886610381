package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"transbot/internal/adapters/discord"
	"transbot/internal/application"
	"transbot/internal/config"
	"transbot/internal/infrastructure/database"
	"transbot/internal/infrastructure/engine"
	"transbot/internal/infrastructure/i18n"
	"transbot/internal/ports/output"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Database initialisation failed: %v", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("❌ Database migration failed: %v", err)
	}

	translationEngine, err := newEngine(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Translation engine initialisation failed: %v", err)
	}

	translator := i18n.NewTranslator(cfg.DefaultLocale)
	screens := application.NewScreenService(
		translationEngine,
		database.NewPreferenceRepository(pool),
		database.NewHistoryRepository(pool),
		translator,
		application.WithTranslateTimeout(cfg.TranslateTimeout),
		application.WithIdleTimeout(cfg.ScreenIdleTimeout),
		application.WithBaseContext(ctx),
	)

	bot, err := discord.NewBot(cfg, screens, translator)
	if err != nil {
		log.Fatalf("❌ Bot creation failed: %v", err)
	}
	if err := bot.Start(ctx); err != nil {
		log.Printf("❌ Bot failed: %v", err)
		os.Exit(1)
	}
}

func newEngine(ctx context.Context, cfg *config.Config) (output.Engine, error) {
	switch cfg.Engine {
	case config.EngineLambda:
		lambdaEngine, err := engine.NewLambdaEngine(ctx, engine.LambdaConfig{FunctionName: cfg.LambdaFunction})
		if err != nil {
			return nil, err
		}
		log.Printf("✅ Lambda translation engine configured (function=%s).", cfg.LambdaFunction)
		return lambdaEngine, nil
	default:
		return engine.NewDictionaryEngine(engine.DefaultDictionaryConfig()), nil
	}
}
