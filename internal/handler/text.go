package handler

import (
	"context"
	"log/slog"

	"github.com/lucassaureliano/amelie/internal/config"
	"github.com/lucassaureliano/amelie/internal/middleware"
	"github.com/lucassaureliano/amelie/internal/whatsapp"
)

// HandleText runs the conversational pipeline for a plain text message.
// In group chats the bot only answers when tagged or when the quoted message
// is its own; direct chats are always answered.
func (h *Handler) HandleText(ctx context.Context, msg *whatsapp.Message) {
	if msg.Text == "" {
		return
	}
	if msg.IsGroup && !msg.MentionsBot(h.client.BotID()) {
		return
	}

	stopTyping := h.client.StartTyping(ctx, msg.Chat)
	defer stopTyping()

	reply, err := h.responder.ReplyToText(ctx, msg.Chat.String(), h.senderName(ctx, msg), msg.Text)
	if err != nil {
		slog.Error("text pipeline", "chat_id", msg.Chat.String(), "error", err)
		h.reply(ctx, msg, config.ApologyReply)
		return
	}
	h.reply(ctx, msg, reply)
}

// senderName prefers the stored user snapshot over the raw push name.
func (h *Handler) senderName(ctx context.Context, msg *whatsapp.Message) string {
	if u := middleware.GetUser(ctx); u != nil {
		return u.Name
	}
	if msg.PushName != "" {
		return msg.PushName
	}
	return msg.Sender.User
}
