package middleware

import (
	"context"

	"github.com/lucassaureliano/amelie/internal/whatsapp"
)

// HandlerFunc processes one normalized inbound message.
type HandlerFunc func(ctx context.Context, msg *whatsapp.Message)

// Middleware wraps a HandlerFunc with cross-cutting behavior.
type Middleware func(next HandlerFunc) HandlerFunc

// Chain applies middlewares left to right around h.
func Chain(h HandlerFunc, mws ...Middleware) HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
