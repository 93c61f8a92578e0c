package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingSecret is returned when a required secret is not configured
var ErrMissingSecret = errors.New("missing required secret")

// Config holds all application configuration values
type Config struct {
	Environment        string
	Port               string
	LogLevel           string
	StaticDir          string
	CORSAllowedOrigins []string
	Telegram           TelegramConfig
	Steam              SteamConfig
}

// TelegramConfig holds the Bot API credentials used for lead notifications
type TelegramConfig struct {
	BotToken string
	ChatID   string
	APIURL   string
}

// SteamConfig holds the Steam Store API settings
type SteamConfig struct {
	APIURL    string
	UserAgent string
}

// Validate reports every missing Telegram secret
func (t TelegramConfig) Validate() error {
	var missing []string
	if t.BotToken == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	if t.ChatID == "" {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingSecret, strings.Join(missing, ", "))
	}
	return nil
}

// LoadConfig reads configuration from the environment, an optional .env file
// and an optional site.config.yml in the working directory
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STATIC_DIR", "public")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("TELEGRAM_API_URL", "https://api.telegram.org")
	v.SetDefault("STEAM_API_URL", "https://store.steampowered.com")
	v.SetDefault("STEAM_USER_AGENT", "agency-site/1.0 (+metadata-proxy)")

	v.SetConfigName("site.config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return &Config{
		Environment:        v.GetString("ENVIRONMENT"),
		Port:               v.GetString("PORT"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		StaticDir:          v.GetString("STATIC_DIR"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		Telegram: TelegramConfig{
			BotToken: v.GetString("TELEGRAM_BOT_TOKEN"),
			ChatID:   v.GetString("TELEGRAM_CHAT_ID"),
			APIURL:   strings.TrimRight(v.GetString("TELEGRAM_API_URL"), "/"),
		},
		Steam: SteamConfig{
			APIURL:    strings.TrimRight(v.GetString("STEAM_API_URL"), "/"),
			UserAgent: v.GetString("STEAM_USER_AGENT"),
		},
	}, nil
}

// IsProduction reports whether the service runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// DeploymentMode returns "serverless" inside AWS Lambda and "server" otherwise
func (c *Config) DeploymentMode() string {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		return "serverless"
	}
	return "server"
}

// Masked returns a copy safe to print, with secrets replaced
func (c Config) Masked() Config {
	c.Telegram.BotToken = mask(c.Telegram.BotToken)
	c.Telegram.ChatID = mask(c.Telegram.ChatID)
	c.CORSAllowedOrigins = append([]string(nil), c.CORSAllowedOrigins...)
	return c
}

func mask(s string) string {
	if s == "" {
		return "<unset>"
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
