package service

import (
	"context"
	"testing"

	chatconfigrepo "github.com/lucassaureliano/amelie/internal/repository/chatconfig"
	promptrepo "github.com/lucassaureliano/amelie/internal/repository/prompt"
)

func testConfigs(t *testing.T) (*ChatConfigService, *PromptService) {
	t.Helper()
	db := testDB(t)
	configs := chatconfigrepo.NewRepository(db)
	prompts := promptrepo.NewRepository(db)
	return NewChatConfigService(configs, prompts, "Amelie"), NewPromptService(prompts, configs)
}

func TestConfig_DefaultsWhenUnset(t *testing.T) {
	ctx := context.Background()
	s, _ := testConfigs(t)

	eff, err := s.Effective(ctx, "chat1")
	if err != nil {
		t.Fatal(err)
	}

	if eff.Temperature != 0.9 {
		t.Errorf("Temperature = %v, want 0.9", eff.Temperature)
	}
	if eff.TopK != 93 {
		t.Errorf("TopK = %v, want 93", eff.TopK)
	}
	if eff.TopP != 0.95 {
		t.Errorf("TopP = %v, want 0.95", eff.TopP)
	}
	if eff.MaxOutputTokens != 1024 {
		t.Errorf("MaxOutputTokens = %v, want 1024", eff.MaxOutputTokens)
	}
	if !eff.MediaImage || !eff.MediaAudio {
		t.Errorf("media toggles default to true, got image=%v audio=%v", eff.MediaImage, eff.MediaAudio)
	}
	if eff.BotName != "Amelie" {
		t.Errorf("BotName = %q, want Amelie", eff.BotName)
	}
	if eff.SystemInstructions != "" {
		t.Errorf("SystemInstructions = %q, want empty", eff.SystemInstructions)
	}
}

func TestConfig_SetMergesFieldByField(t *testing.T) {
	ctx := context.Background()
	s, _ := testConfigs(t)

	if err := s.Set(ctx, "chat1", "temperature", 0.2); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "chat1", "mediaAudio", false); err != nil {
		t.Fatal(err)
	}

	eff, err := s.Effective(ctx, "chat1")
	if err != nil {
		t.Fatal(err)
	}
	if eff.Temperature != 0.2 {
		t.Errorf("Temperature = %v, want 0.2", eff.Temperature)
	}
	if eff.MediaAudio {
		t.Error("MediaAudio should be false")
	}
	// Untouched fields keep their defaults
	if eff.TopK != 93 || eff.TopP != 0.95 || !eff.MediaImage {
		t.Errorf("unrelated fields changed: %+v", eff)
	}
}

func TestConfig_SetRejectsUnknownField(t *testing.T) {
	ctx := context.Background()
	s, _ := testConfigs(t)

	if err := s.Set(ctx, "chat1", "bogus", 1.0); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestConfig_ResolvesActivePrompt(t *testing.T) {
	ctx := context.Background()
	s, prompts := testConfigs(t)

	if err := prompts.Define(ctx, "chat1", "Audiomar", "You describe images."); err != nil {
		t.Fatal(err)
	}
	if ok, err := prompts.Activate(ctx, "chat1", "Audiomar"); err != nil || !ok {
		t.Fatalf("activate failed: ok=%v err=%v", ok, err)
	}

	eff, err := s.Effective(ctx, "chat1")
	if err != nil {
		t.Fatal(err)
	}
	if want := "Your name is Audiomar. You describe images."; eff.SystemInstructions != want {
		t.Errorf("SystemInstructions = %q, want %q", eff.SystemInstructions, want)
	}
	if eff.BotName != "Audiomar" {
		t.Errorf("BotName = %q, want Audiomar", eff.BotName)
	}
	if eff.ActivePrompt != "Audiomar" {
		t.Errorf("ActivePrompt = %q, want Audiomar", eff.ActivePrompt)
	}
}

func TestConfig_DeactivateRestoresDefaultName(t *testing.T) {
	ctx := context.Background()
	s, prompts := testConfigs(t)

	if err := prompts.Define(ctx, "chat1", "Audiomar", "body"); err != nil {
		t.Fatal(err)
	}
	if _, err := prompts.Activate(ctx, "chat1", "Audiomar"); err != nil {
		t.Fatal(err)
	}
	if err := prompts.Deactivate(ctx, "chat1"); err != nil {
		t.Fatal(err)
	}

	eff, err := s.Effective(ctx, "chat1")
	if err != nil {
		t.Fatal(err)
	}
	if eff.BotName != "Amelie" {
		t.Errorf("BotName = %q, want Amelie", eff.BotName)
	}
	if eff.SystemInstructions != "" {
		t.Errorf("SystemInstructions = %q, want empty", eff.SystemInstructions)
	}
}
