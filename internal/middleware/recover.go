package middleware

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/lucassaureliano/amelie/internal/whatsapp"
)

// Recover returns middleware that recovers from panics so one bad message
// never takes the process down.
func Recover() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, msg *whatsapp.Message) {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("panic recovered in handler",
						"panic", r,
						"chat_id", msg.Chat.String(),
						"stack", string(debug.Stack()),
					)
				}
			}()
			next(ctx, msg)
		}
	}
}
