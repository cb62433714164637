package handler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/lucassaureliano/amelie/internal/config"
	"github.com/lucassaureliano/amelie/internal/service"
	"github.com/lucassaureliano/amelie/internal/whatsapp"
)

// Handler routes normalized inbound messages to the command surface, the
// text pipeline, or the media pipeline.
type Handler struct {
	client      *whatsapp.Client
	cfg         *config.Config
	responder   *service.Responder
	history     *service.HistoryService
	prompts     *service.PromptService
	chatConfigs *service.ChatConfigService
	users       *service.UserService
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Client      *whatsapp.Client
	Cfg         *config.Config
	Responder   *service.Responder
	History     *service.HistoryService
	Prompts     *service.PromptService
	ChatConfigs *service.ChatConfigService
	Users       *service.UserService
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		client:      deps.Client,
		cfg:         deps.Cfg,
		responder:   deps.Responder,
		history:     deps.History,
		prompts:     deps.Prompts,
		chatConfigs: deps.ChatConfigs,
		users:       deps.Users,
	}
}

// Handle is the single entry point for inbound messages.
func (h *Handler) Handle(ctx context.Context, msg *whatsapp.Message) {
	if !msg.HasMedia() && strings.HasPrefix(strings.TrimSpace(msg.Text), config.CommandPrefix) {
		h.HandleCommand(ctx, msg)
		return
	}
	if msg.HasMedia() {
		h.HandleMedia(ctx, msg)
		return
	}
	h.HandleText(ctx, msg)
}

// reply sends text back into the chat, logging instead of failing the event.
func (h *Handler) reply(ctx context.Context, msg *whatsapp.Message, text string) {
	if err := h.client.SendText(ctx, msg.Chat, text); err != nil {
		slog.Error("send reply", "chat_id", msg.Chat.String(), "error", err)
	}
}
