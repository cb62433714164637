package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lucassaureliano/amelie/internal/domain"
	"github.com/lucassaureliano/amelie/internal/repository/user"
)

// UserService tracks chat participants. A user is created on the first
// message observed from its transport identifier; the display name is a
// snapshot and is never refreshed.
type UserService struct {
	users user.Repository
}

func NewUserService(users user.Repository) *UserService {
	return &UserService{users: users}
}

// FindOrCreate resolves the display name in order: transport push name,
// contact-book name, synthesized fallback from the identifier.
func (s *UserService) FindOrCreate(ctx context.Context, id, pushName, contactName string) (*domain.User, error) {
	existing, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	name := pushName
	if name == "" {
		name = contactName
	}
	if name == "" {
		name = fallbackName(id)
	}

	u := &domain.User{ID: id, Name: name, JoinedAt: time.Now()}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *UserService) GetMany(ctx context.Context, ids []string) ([]domain.User, error) {
	return s.users.FindByIDs(ctx, ids)
}

// fallbackName derives a readable handle from a transport identifier like
// "5511999999999@s.whatsapp.net".
func fallbackName(id string) string {
	local, _, found := strings.Cut(id, "@")
	if found && local != "" {
		return "User" + lastDigits(local, 4)
	}
	return "User"
}

func lastDigits(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
