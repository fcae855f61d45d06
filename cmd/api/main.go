package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"smartgov-assistant/config"
	tgDelivery "smartgov-assistant/internal/bot/delivery/telegram"
	"smartgov-assistant/internal/dispatcher"
	"smartgov-assistant/internal/httpserver"
	"smartgov-assistant/internal/intent"
	"smartgov-assistant/internal/intent/fallback"
	"smartgov-assistant/internal/language"
	"smartgov-assistant/internal/model"
	"smartgov-assistant/internal/observe"
	"smartgov-assistant/internal/session"
	"smartgov-assistant/internal/status"
	"smartgov-assistant/internal/submission"
	csvRepo "smartgov-assistant/internal/submission/repository/csvfile"
	sheetsRepo "smartgov-assistant/internal/submission/repository/sheets"
	submissionUC "smartgov-assistant/internal/submission/usecase"
	"smartgov-assistant/pkg/cache"
	"smartgov-assistant/pkg/log"
	"smartgov-assistant/pkg/ollama"
	"smartgov-assistant/pkg/telegram"
)

func main() {
	// 1. Configuration
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting SmartGov Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Intent patterns and classification
	patterns, err := intent.LoadPatterns(cfg.Intents.PatternsPath)
	if err != nil {
		logger.Errorf(ctx, "Failed to load intent patterns: %v", err)
		return
	}
	fastClassifier := intent.NewFastClassifier(patterns)

	// 4. Caches
	intentCache := cache.New[intent.Classification](cfg.Caches.Size, cfg.Caches.IntentTTL)
	languageCache := cache.New[language.Cached](cfg.Caches.Size, cfg.Caches.LanguageTTL)
	responseCache := cache.New[model.Response](cfg.Caches.Size, cfg.Caches.ResponseTTL)

	// 5. Language detector
	detector := language.New(language.Config{
		MinPersistTokens: cfg.Language.MinPersistTokens,
		MinPersistScore:  cfg.Language.MinPersistScore,
	}, languageCache)

	// 6. Fallback classifier (Ollama)
	ollamaClient := ollama.NewClient(ollama.Config{
		BaseURL: cfg.Ollama.BaseURL,
		Model:   cfg.Ollama.Model,
	})
	fallbackClassifier := fallback.New(logger, ollamaClient, intentCache, fallback.Config{
		Timeout: cfg.Ollama.Timeout,
	})

	// 7. Submission persistence: Sheets when credentials exist, CSV otherwise
	var repo submission.Repository
	if cfg.Sheets.CredentialsPath != "" && cfg.Sheets.SpreadsheetID != "" {
		repo, err = sheetsRepo.New(ctx, logger, sheetsRepo.Config{
			SpreadsheetID:   cfg.Sheets.SpreadsheetID,
			SheetName:       cfg.Sheets.SheetName,
			CredentialsFile: cfg.Sheets.CredentialsPath,
		})
		if err != nil {
			logger.Warnf(ctx, "Google Sheets not available, falling back to CSV: %v", err)
		} else {
			logger.Info(ctx, "✅ Google Sheets persistence initialized")
		}
	}
	if repo == nil {
		repo = csvRepo.New(cfg.Sheets.CSVFallbackPath)
		logger.Infof(ctx, "Submissions will be appended to %s", cfg.Sheets.CSVFallbackPath)
	}
	submissions := submissionUC.New(logger, repo)

	// 8. Status API client (optional)
	var statusChecker dispatcher.StatusChecker
	if cfg.Exgratia.BaseURL != "" && cfg.Exgratia.Username != "" {
		statusChecker = status.NewClient(logger, status.Config{
			BaseURL:        cfg.Exgratia.BaseURL,
			Username:       cfg.Exgratia.Username,
			Password:       cfg.Exgratia.Password,
			RequestsPerSec: cfg.Exgratia.RequestsPerSec,
		})
		logger.Info(ctx, "✅ Ex-Gratia status API client initialized")
	} else {
		logger.Warn(ctx, "Ex-Gratia status API not configured, status lookups will be unavailable")
	}

	// 9. Sessions
	sessions := session.NewStore()
	sessions.StartSweeper(ctx, logger, cfg.Session.SweepInterval, cfg.Session.IdleTimeout)

	// 10. Observability
	collector := observe.NewCollector(logger)

	// 11. Dispatcher
	disp := dispatcher.New(logger, dispatcher.Dependencies{
		Sessions:      sessions,
		Detector:      detector,
		Fast:          fastClassifier,
		Fallback:      fallbackClassifier,
		IntentCache:   intentCache,
		ResponseCache: responseCache,
		Submissions:   submissions,
		Status:        statusChecker,
		Events:        collector,
	})

	// 12. Telegram delivery
	var telegramHandler tgDelivery.Handler
	if cfg.Telegram.BotToken != "" {
		bot := telegram.NewBot(cfg.Telegram.BotToken)
		telegramHandler = tgDelivery.New(logger, disp, bot, tgDelivery.Config{
			SecretToken:     cfg.Telegram.SecretToken,
			RateLimitPerMin: cfg.Telegram.RateLimitPerMin,
		})

		// Register webhook: auto-detect ngrok or fall back to manual config
		webhookURL := cfg.Telegram.WebhookURL
		if webhookURL == "" {
			detectCtx, cancel := context.WithTimeout(ctx, 45*time.Second)
			ngrokURL, ngrokErr := detectNgrokURL(detectCtx, "http://ngrok:4040")
			cancel()
			if ngrokErr != nil {
				logger.Warnf(ctx, "Could not detect ngrok URL: %v", ngrokErr)
			} else {
				webhookURL = ngrokURL + "/webhook/telegram"
				logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
			}
		}
		if webhookURL != "" {
			if whErr := bot.SetWebhook(webhookURL, cfg.Telegram.SecretToken); whErr != nil {
				logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
			} else {
				logger.Infof(ctx, "✅ Telegram webhook registered at %s", webhookURL)
			}
		}
	} else {
		logger.Warn(ctx, "TELEGRAM_BOT_TOKEN missing, webhook route disabled")
	}

	// 13. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		TelegramHandler: telegramHandler,
		Stats:           collector,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 14. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
