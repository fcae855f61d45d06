package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// SmartGov assistant specifics
	Telegram TelegramConfig
	Ollama   OllamaConfig
	Caches   CachesConfig
	Language LanguageConfig
	Session  SessionConfig
	Sheets   SheetsConfig
	Exgratia ExgratiaConfig
	Intents  IntentsConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type TelegramConfig struct {
	BotToken        string
	WebhookURL      string
	SecretToken     string
	RateLimitPerMin int
}

type OllamaConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// CachesConfig sets the TTL and capacity of the three lookup caches.
type CachesConfig struct {
	IntentTTL   time.Duration
	LanguageTTL time.Duration
	ResponseTTL time.Duration
	Size        int
}

type LanguageConfig struct {
	MinPersistTokens int
	MinPersistScore  float64
}

type SessionConfig struct {
	IdleTimeout   time.Duration
	SweepInterval time.Duration
}

type SheetsConfig struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsPath string
	// CSVFallbackPath is used when no credentials are configured.
	CSVFallbackPath string
}

type ExgratiaConfig struct {
	BaseURL        string
	Username       string
	Password       string
	RequestsPerSec float64
}

type IntentsConfig struct {
	PatternsPath string
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Telegram
	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	cfg.Telegram.SecretToken = viper.GetString("telegram.secret_token")
	cfg.Telegram.RateLimitPerMin = viper.GetInt("telegram.rate_limit_per_min")
	if tgToken := viper.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}

	// Ollama
	cfg.Ollama.BaseURL = viper.GetString("ollama.base_url")
	cfg.Ollama.Model = viper.GetString("ollama.model")
	cfg.Ollama.Timeout = viper.GetDuration("ollama.timeout")
	if ollamaURL := viper.GetString("ollama_base_url"); ollamaURL != "" {
		cfg.Ollama.BaseURL = ollamaURL
	}

	// Caches
	cfg.Caches.IntentTTL = viper.GetDuration("caches.intent_ttl")
	cfg.Caches.LanguageTTL = viper.GetDuration("caches.language_ttl")
	cfg.Caches.ResponseTTL = viper.GetDuration("caches.response_ttl")
	cfg.Caches.Size = viper.GetInt("caches.size")

	// Language detection
	cfg.Language.MinPersistTokens = viper.GetInt("language.min_persist_tokens")
	cfg.Language.MinPersistScore = viper.GetFloat64("language.min_persist_score")

	// Sessions
	cfg.Session.IdleTimeout = viper.GetDuration("session.idle_timeout")
	cfg.Session.SweepInterval = viper.GetDuration("session.sweep_interval")

	// Google Sheets persistence
	cfg.Sheets.SpreadsheetID = viper.GetString("sheets.spreadsheet_id")
	cfg.Sheets.SheetName = viper.GetString("sheets.sheet_name")
	cfg.Sheets.CredentialsPath = viper.GetString("sheets.credentials_path")
	cfg.Sheets.CSVFallbackPath = viper.GetString("sheets.csv_fallback_path")
	if sheetsCreds := viper.GetString("google_sheets_credentials"); sheetsCreds != "" {
		cfg.Sheets.CredentialsPath = sheetsCreds
	}

	// NC Ex-Gratia status API
	cfg.Exgratia.BaseURL = viper.GetString("exgratia.base_url")
	cfg.Exgratia.Username = viper.GetString("exgratia.username")
	cfg.Exgratia.Password = viper.GetString("exgratia.password")
	cfg.Exgratia.RequestsPerSec = viper.GetFloat64("exgratia.requests_per_sec")

	// Intent patterns
	cfg.Intents.PatternsPath = viper.GetString("intents.patterns_path")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("telegram.rate_limit_per_min", 60)

	viper.SetDefault("ollama.base_url", "http://localhost:11434")
	viper.SetDefault("ollama.model", "qwen2.5:3b")
	viper.SetDefault("ollama.timeout", "3s")

	viper.SetDefault("caches.intent_ttl", "10m")
	viper.SetDefault("caches.language_ttl", "30m")
	viper.SetDefault("caches.response_ttl", "5m")
	viper.SetDefault("caches.size", 1000)

	viper.SetDefault("language.min_persist_tokens", 2)
	viper.SetDefault("language.min_persist_score", 2.0)

	viper.SetDefault("session.idle_timeout", "30m")
	viper.SetDefault("session.sweep_interval", "5m")

	viper.SetDefault("sheets.sheet_name", "Submissions")
	viper.SetDefault("sheets.csv_fallback_path", "submissions.csv")

	viper.SetDefault("exgratia.requests_per_sec", 2.0)

	viper.SetDefault("intents.patterns_path", "./config/intents.yaml")
}
