package user

import (
	"context"

	"github.com/lucassaureliano/amelie/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, u *domain.User) error
	// FindByID returns nil without error when the user is unknown.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.User, error)
}
