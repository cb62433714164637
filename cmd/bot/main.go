package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lucassaureliano/amelie/internal/config"
	"github.com/lucassaureliano/amelie/internal/handler"
	"github.com/lucassaureliano/amelie/internal/middleware"
	"github.com/lucassaureliano/amelie/internal/repository"
	chatconfigrepo "github.com/lucassaureliano/amelie/internal/repository/chatconfig"
	messagerepo "github.com/lucassaureliano/amelie/internal/repository/message"
	promptrepo "github.com/lucassaureliano/amelie/internal/repository/prompt"
	userrepo "github.com/lucassaureliano/amelie/internal/repository/user"
	"github.com/lucassaureliano/amelie/internal/service"
	"github.com/lucassaureliano/amelie/internal/whatsapp"
)

func main() {
	// Load configuration first so the log level is honored
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the embedded store
	db, err := repository.Open(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	messages := messagerepo.NewRepository(db)
	prompts := promptrepo.NewRepository(db)
	chatConfigs := chatconfigrepo.NewRepository(db)
	users := userrepo.NewRepository(db)

	// Initialize services
	historyService := service.NewHistoryService(messages, cfg.MaxHistoryPairs)
	promptService := service.NewPromptService(prompts, chatConfigs)
	chatConfigService := service.NewChatConfigService(chatConfigs, prompts, cfg.BotName)
	userService := service.NewUserService(users)

	gemini, err := service.NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.Model)
	if err != nil {
		slog.Error("failed to create model client", "error", err)
		os.Exit(1)
	}
	responder := service.NewResponder(historyService, chatConfigService, gemini)

	// Connect to WhatsApp
	client, err := whatsapp.New(ctx, cfg.SessionPath)
	if err != nil {
		slog.Error("failed to create whatsapp client", "error", err)
		os.Exit(1)
	}

	// Initialize handler
	h := handler.New(handler.Deps{
		Client:      client,
		Cfg:         cfg,
		Responder:   responder,
		History:     historyService,
		Prompts:     promptService,
		ChatConfigs: chatConfigService,
		Users:       userService,
	})

	// Wire the event pipeline
	client.OnMessage(middleware.Chain(
		h.Handle,
		middleware.Recover(),
		middleware.Logging(),
		middleware.UserLoader(userService, client),
	))

	if err := client.Connect(ctx); err != nil {
		slog.Error("failed to connect", "error", err)
		os.Exit(1)
	}

	slog.Info("bot running", "name", cfg.BotName)
	<-ctx.Done()

	client.Disconnect()
	slog.Info("bot stopped gracefully")
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
