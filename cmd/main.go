package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Haider077/CallingJournal/internal/clients/ai"
	chatRepos "github.com/Haider077/CallingJournal/internal/data/repos/chat"
	journalRepos "github.com/Haider077/CallingJournal/internal/data/repos/journal"
	userRepos "github.com/Haider077/CallingJournal/internal/data/repos/user"
	"github.com/Haider077/CallingJournal/internal/db"
	apphttp "github.com/Haider077/CallingJournal/internal/http"
	"github.com/Haider077/CallingJournal/internal/http/handlers"
	"github.com/Haider077/CallingJournal/internal/http/middleware"
	"github.com/Haider077/CallingJournal/internal/observability"
	"github.com/Haider077/CallingJournal/internal/platform/envutil"
	"github.com/Haider077/CallingJournal/internal/platform/logger"
	"github.com/Haider077/CallingJournal/internal/services"
)

const serviceName = "calling-journal"

func main() {
	// Logger
	logMode := envutil.String("LOG_MODE", "development")
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file loaded", "error", err)
	}
	jwtSecretKey := envutil.String("JWT_SECRET_KEY", "defaultsecret")
	accessTokenTTL := time.Duration(envutil.Int("ACCESS_TOKEN_TTL", int(services.DefaultAccessTTL/time.Second))) * time.Second

	// Tracing
	ctx := context.Background()
	shutdownOTel := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: serviceName,
		Environment: envutil.String("APP_ENV", "development"),
		Version:     envutil.String("APP_VERSION", "dev"),
	})
	if shutdownOTel != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownOTel(shutdownCtx); err != nil {
				log.Warn("OTel shutdown failed", "error", err)
			}
		}()
	}

	// Database
	dbService, err := db.New(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Error("Database auto migration failed", "error", err)
		os.Exit(1)
	}
	gdb := dbService.DB()

	// Repos
	log.Info("Setting up repos...")
	userRepo := userRepos.NewUserRepo(gdb, log)
	entryRepo := journalRepos.NewEntryRepo(gdb, log)
	sessionRepo := chatRepos.NewSessionRepo(gdb, log)
	messageRepo := chatRepos.NewMessageRepo(gdb, log)

	// AI provider
	provider := buildAIProvider(log)

	// Services
	log.Info("Setting up services...")
	passwordService := services.NewPasswordService(log)
	tokenService := services.NewTokenService(log, jwtSecretKey, accessTokenTTL)
	authService := services.NewAuthService(gdb, log, userRepo, passwordService, tokenService)
	journalService := services.NewJournalService(gdb, log, entryRepo)
	chatService := services.NewChatService(gdb, log, sessionRepo, messageRepo, provider)

	// HTTP
	log.Info("Setting up handlers...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)
	router := apphttp.NewRouter(apphttp.RouterConfig{
		Log:            log,
		AuthMiddleware: authMiddleware,
		HealthHandler:  handlers.NewHealthHandler(log),
		AuthHandler:    handlers.NewAuthHandler(log, authService),
		JournalHandler: handlers.NewJournalHandler(log, journalService),
		ChatHandler:    handlers.NewChatHandler(log, chatService),
		ServiceName:    serviceName,
		TracingEnabled: observability.Enabled(),
	})

	port := envutil.String("PORT", "8000")
	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

// buildAIProvider picks the chat backend from AI_PROVIDER. Running without any
// configured provider is allowed; chat sends then fail with a 503 while the
// rest of the API works.
func buildAIProvider(log *logger.Logger) ai.Provider {
	choice := envutil.String("AI_PROVIDER", "gemini")
	switch choice {
	case "openai":
		p, err := ai.NewOpenAIProvider(ai.OpenAIConfig{
			APIKey:  envutil.String("OPENAI_API_KEY", ""),
			BaseURL: envutil.String("OPENAI_BASE_URL", ""),
			Model:   envutil.String("OPENAI_MODEL", ""),
		})
		if err != nil {
			log.Warn("OpenAI provider not configured, chat disabled", "error", err)
			return nil
		}
		return p
	default:
		p, err := ai.NewGeminiProvider(ai.GeminiConfig{
			APIKey:  envutil.String("GEMINI_API_KEY", ""),
			BaseURL: envutil.String("GEMINI_BASE_URL", ""),
			Model:   envutil.String("GEMINI_MODEL", ""),
		})
		if err != nil {
			log.Warn("Gemini provider not configured, chat disabled", "error", err)
			return nil
		}
		return p
	}
}
