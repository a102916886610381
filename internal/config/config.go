package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Engine names accepted in ENGINE.
const (
	EngineDictionary = "dictionary"
	EngineLambda     = "lambda"
)

type Config struct {
	Token             string
	GuildID           string
	DatabaseURL       string
	DefaultLocale     string
	Engine            string
	LambdaFunction    string
	TranslateTimeout  time.Duration
	ScreenIdleTimeout time.Duration
}

// Load reads the configuration from the environment (and .env when present) and validates it.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment (Docker, CI, etc.).
	_ = godotenv.Load()

	cfg := &Config{
		Token:          os.Getenv("TOKEN"),
		GuildID:        os.Getenv("GUILD_ID"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DefaultLocale:  os.Getenv("DEFAULT_LOCALE"),
		Engine:         strings.ToLower(strings.TrimSpace(os.Getenv("ENGINE"))),
		LambdaFunction: os.Getenv("LAMBDA_FUNCTION"),
	}

	var err error
	if cfg.TranslateTimeout, err = durationFromEnv("TRANSLATE_TIMEOUT", time.Second, 15); err != nil {
		return nil, err
	}
	if cfg.ScreenIdleTimeout, err = durationFromEnv("SCREEN_IDLE_TIMEOUT", time.Minute, 30); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate applies defaults and checks every setting.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("config: TOKEN is required")
	}

	for _, r := range c.GuildID {
		if r < '0' || r > '9' {
			return fmt.Errorf("config: GUILD_ID must be a Discord guild ID (digits only)")
		}
	}

	if strings.TrimSpace(c.DatabaseURL) == "" {
		// Handy default for local runs.
		c.DatabaseURL = "postgres://localhost:5432/transbot?sslmode=disable"
	}

	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
	}

	if strings.TrimSpace(c.DefaultLocale) == "" {
		c.DefaultLocale = "zh-Hant"
	}
	if _, err := language.Parse(c.DefaultLocale); err != nil {
		return fmt.Errorf("config: invalid DEFAULT_LOCALE (%q): %w", c.DefaultLocale, err)
	}

	switch c.Engine {
	case "":
		c.Engine = EngineDictionary
	case EngineDictionary:
	case EngineLambda:
		if strings.TrimSpace(c.LambdaFunction) == "" {
			return fmt.Errorf("config: LAMBDA_FUNCTION is required when ENGINE=lambda")
		}
	default:
		return fmt.Errorf("config: unknown ENGINE %q (expected %q or %q)", c.Engine, EngineDictionary, EngineLambda)
	}

	return nil
}

// durationFromEnv reads a positive integer number of units from key.
func durationFromEnv(key string, unit time.Duration, fallback int) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return time.Duration(fallback) * unit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("config: %s must be a positive integer, got %q", key, raw)
	}
	return time.Duration(n) * unit, nil
}
