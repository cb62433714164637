package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lucassaureliano/amelie/internal/whatsapp"
)

// Logging returns middleware that logs message processing time, tagging every
// event with a correlation id.
func Logging() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, msg *whatsapp.Message) {
			start := time.Now()
			eventID := uuid.NewString()

			msgType := "text"
			if msg.HasMedia() {
				msgType = msg.MediaKind()
			}

			next(ctx, msg)

			slog.Debug("message processed",
				"event_id", eventID,
				"type", msgType,
				"chat_id", msg.Chat.String(),
				"sender", msg.Sender.String(),
				"is_group", msg.IsGroup,
				"duration", time.Since(start),
			)
		}
	}
}
