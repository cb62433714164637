package chatconfig

import (
	"context"

	"github.com/lucassaureliano/amelie/internal/domain"
)

type Repository interface {
	// Find returns nil without error when the chat has no stored config.
	Find(ctx context.Context, chatID string) (*domain.ChatConfig, error)
	// SetField upserts a single column, leaving every other field untouched.
	SetField(ctx context.Context, chatID, column string, value any) error
}
