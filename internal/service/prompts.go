package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/lucassaureliano/amelie/internal/domain"
	"github.com/lucassaureliano/amelie/internal/repository/chatconfig"
	"github.com/lucassaureliano/amelie/internal/repository/prompt"
)

// namePreamble is the fixed prefix synthesized into every stored prompt.
// BotNameFromInstructions relies on this format; keep the two in sync.
const namePreamble = "Your name is "

var botNamePattern = regexp.MustCompile(`^Your name is ([^.]+)\.`)

// PromptService is the registry of named per-chat system instructions.
type PromptService struct {
	prompts prompt.Repository
	configs chatconfig.Repository
}

func NewPromptService(prompts prompt.Repository, configs chatconfig.Repository) *PromptService {
	return &PromptService{prompts: prompts, configs: configs}
}

// Define creates or overwrites the prompt. The stored text always begins with
// the name preamble followed by the caller-supplied body, unmodified.
func (s *PromptService) Define(ctx context.Context, chatID, name, body string) error {
	p := &domain.Prompt{
		ChatID: chatID,
		Name:   name,
		Text:   namePreamble + name + ". " + body,
	}
	if err := s.prompts.Upsert(ctx, p); err != nil {
		return fmt.Errorf("define prompt: %w", err)
	}
	return nil
}

// Fetch returns nil when the prompt does not exist; absence is not an error.
func (s *PromptService) Fetch(ctx context.Context, chatID, name string) (*domain.Prompt, error) {
	return s.prompts.FindByName(ctx, chatID, name)
}

// List returns every prompt for the chat; ordering is the store's natural
// order and callers must not rely on it.
func (s *PromptService) List(ctx context.Context, chatID string) ([]domain.Prompt, error) {
	return s.prompts.FindByChatID(ctx, chatID)
}

// Activate points the chat's config at the named prompt. Returns false when
// the prompt does not exist; ActivePrompt is left untouched in that case.
func (s *PromptService) Activate(ctx context.Context, chatID, name string) (bool, error) {
	p, err := s.Fetch(ctx, chatID, name)
	if err != nil {
		return false, err
	}
	if p == nil {
		return false, nil
	}
	if err := s.configs.SetField(ctx, chatID, "active_prompt", name); err != nil {
		return false, fmt.Errorf("activate prompt: %w", err)
	}
	return true, nil
}

// Deactivate clears the active-prompt reference. The prompt record itself is
// never deleted.
func (s *PromptService) Deactivate(ctx context.Context, chatID string) error {
	if err := s.configs.SetField(ctx, chatID, "active_prompt", nil); err != nil {
		return fmt.Errorf("deactivate prompt: %w", err)
	}
	return nil
}

// BotNameFromInstructions extracts the display name from the stored preamble.
// Returns "" when the text does not start with the expected format.
func BotNameFromInstructions(text string) string {
	m := botNamePattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
