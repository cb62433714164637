package prompt

import (
	"context"

	"github.com/lucassaureliano/amelie/internal/domain"
)

type Repository interface {
	// Upsert creates or overwrites the prompt keyed by (chatID, name).
	Upsert(ctx context.Context, p *domain.Prompt) error
	// FindByName returns nil without error when the prompt does not exist.
	FindByName(ctx context.Context, chatID, name string) (*domain.Prompt, error)
	FindByChatID(ctx context.Context, chatID string) ([]domain.Prompt, error)
}
