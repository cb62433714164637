package middleware

import (
	"context"
	"log/slog"

	"github.com/lucassaureliano/amelie/internal/domain"
	"github.com/lucassaureliano/amelie/internal/service"
	"github.com/lucassaureliano/amelie/internal/whatsapp"
)

type ctxKey string

const UserKey ctxKey = "user"

// GetUser extracts the sender's user record from context.
func GetUser(ctx context.Context) *domain.User {
	u, ok := ctx.Value(UserKey).(*domain.User)
	if !ok {
		return nil
	}
	return u
}

// UserLoader returns middleware that creates the sender's user record on
// first contact and injects it into context. The display name is resolved
// once: push name, then contact-book name, then a fallback from the id.
func UserLoader(users *service.UserService, client *whatsapp.Client) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, msg *whatsapp.Message) {
			contactName := client.ContactName(ctx, msg.Sender)

			u, err := users.FindOrCreate(ctx, msg.Sender.String(), msg.PushName, contactName)
			if err != nil {
				slog.Error("load user", "sender", msg.Sender.String(), "error", err)
			} else {
				ctx = context.WithValue(ctx, UserKey, u)
			}

			next(ctx, msg)
		}
	}
}
