package message

import (
	"context"

	"github.com/lucassaureliano/amelie/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, msg *domain.Message) error
	// FindNewest returns up to limit messages for the chat, newest first.
	FindNewest(ctx context.Context, chatID string, limit int) ([]domain.Message, error)
	// DeleteOldest removes every message for the chat except the newest keep rows.
	DeleteOldest(ctx context.Context, chatID string, keep int) error
	DeleteByChatID(ctx context.Context, chatID string) error
}
