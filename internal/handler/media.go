package handler

import (
	"context"
	"log/slog"

	"github.com/lucassaureliano/amelie/internal/config"
	"github.com/lucassaureliano/amelie/internal/whatsapp"
)

// HandleMedia runs the pipeline for image and audio attachments. When the
// media kind is disabled for the chat the message is dropped silently: no
// reply, no history write.
func (h *Handler) HandleMedia(ctx context.Context, msg *whatsapp.Message) {
	if msg.IsGroup && !msg.MentionsBot(h.client.BotID()) {
		return
	}

	media, err := msg.DownloadMedia(ctx)
	if err != nil {
		slog.Error("download media", "chat_id", msg.Chat.String(), "error", err)
		h.reply(ctx, msg, config.ApologyReply)
		return
	}

	stopTyping := h.client.StartTyping(ctx, msg.Chat)
	defer stopTyping()

	reply, handled, err := h.responder.ReplyToMedia(ctx, msg.Chat.String(), h.senderName(ctx, msg), *media)
	if err != nil {
		slog.Error("media pipeline", "chat_id", msg.Chat.String(), "kind", media.Kind, "error", err)
		h.reply(ctx, msg, config.ApologyReply)
		return
	}
	if !handled {
		return
	}
	h.reply(ctx, msg, reply)
}
