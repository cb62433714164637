package service

import (
	"context"
	"fmt"

	"github.com/lucassaureliano/amelie/internal/config"
	"github.com/lucassaureliano/amelie/internal/domain"
	"github.com/lucassaureliano/amelie/internal/repository/chatconfig"
	"github.com/lucassaureliano/amelie/internal/repository/prompt"
)

// Columns accepted by Set. The command boundary validates names and value
// types before calling in; this map fixes the column each field lands on.
var configColumns = map[string]string{
	"temperature":     "temperature",
	"topK":            "top_k",
	"topP":            "top_p",
	"maxOutputTokens": "max_output_tokens",
	"mediaImage":      "media_image",
	"mediaAudio":      "media_audio",
}

// ChatConfigService resolves the effective per-chat configuration: the stored
// row merged over static defaults, plus the active prompt's instruction text
// and derived bot name. Recomputed on every read.
type ChatConfigService struct {
	configs        chatconfig.Repository
	prompts        prompt.Repository
	defaultBotName string
}

func NewChatConfigService(configs chatconfig.Repository, prompts prompt.Repository, defaultBotName string) *ChatConfigService {
	return &ChatConfigService{configs: configs, prompts: prompts, defaultBotName: defaultBotName}
}

// Effective merges the stored config over defaults and resolves derived fields.
func (s *ChatConfigService) Effective(ctx context.Context, chatID string) (*domain.EffectiveConfig, error) {
	eff := &domain.EffectiveConfig{
		ChatID:          chatID,
		Temperature:     config.DefaultTemperature,
		TopK:            config.DefaultTopK,
		TopP:            config.DefaultTopP,
		MaxOutputTokens: config.DefaultMaxOutputTokens,
		MediaImage:      true,
		MediaAudio:      true,
		BotName:         s.defaultBotName,
	}

	stored, err := s.configs.Find(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("resolve config: %w", err)
	}
	if stored != nil {
		if stored.Temperature != nil {
			eff.Temperature = *stored.Temperature
		}
		if stored.TopK != nil {
			eff.TopK = *stored.TopK
		}
		if stored.TopP != nil {
			eff.TopP = *stored.TopP
		}
		if stored.MaxOutputTokens != nil {
			eff.MaxOutputTokens = *stored.MaxOutputTokens
		}
		if stored.MediaImage != nil {
			eff.MediaImage = *stored.MediaImage
		}
		if stored.MediaAudio != nil {
			eff.MediaAudio = *stored.MediaAudio
		}
		if stored.ActivePrompt != nil {
			eff.ActivePrompt = *stored.ActivePrompt
		}
	}

	if eff.ActivePrompt != "" {
		p, err := s.prompts.FindByName(ctx, chatID, eff.ActivePrompt)
		if err != nil {
			return nil, fmt.Errorf("resolve active prompt: %w", err)
		}
		if p != nil {
			eff.SystemInstructions = p.Text
			// Every stored prompt carries the name preamble; the fallback
			// covers records written before that invariant held
			if name := BotNameFromInstructions(p.Text); name != "" {
				eff.BotName = name
			}
		}
	}

	return eff, nil
}

// Set upserts a single field. Unknown fields are rejected here as a guard;
// user-facing validation lives at the command boundary.
func (s *ChatConfigService) Set(ctx context.Context, chatID, field string, value any) error {
	column, ok := configColumns[field]
	if !ok {
		return fmt.Errorf("unknown config field %q", field)
	}
	if err := s.configs.SetField(ctx, chatID, column, value); err != nil {
		return fmt.Errorf("set config: %w", err)
	}
	return nil
}
