package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lucassaureliano/amelie/internal/config"
	"github.com/lucassaureliano/amelie/internal/domain"
	chatconfigrepo "github.com/lucassaureliano/amelie/internal/repository/chatconfig"
	messagerepo "github.com/lucassaureliano/amelie/internal/repository/message"
	promptrepo "github.com/lucassaureliano/amelie/internal/repository/prompt"
)

type fakeModel struct {
	reply   string
	err     error
	calls   int
	lastReq domain.ModelRequest
}

func (f *fakeModel) Generate(_ context.Context, req domain.ModelRequest) (string, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func testResponder(t *testing.T, model *fakeModel) (*Responder, *HistoryService, *ChatConfigService) {
	t.Helper()
	db := testDB(t)
	configs := chatconfigrepo.NewRepository(db)
	prompts := promptrepo.NewRepository(db)
	history := NewHistoryService(messagerepo.NewRepository(db), 500)
	chatConfigs := NewChatConfigService(configs, prompts, "Amelie")
	return NewResponder(history, chatConfigs, model), history, chatConfigs
}

func TestResponder_TextPipeline(t *testing.T) {
	ctx := context.Background()
	model := &fakeModel{reply: "Oi, alice!"}
	r, history, _ := testResponder(t, model)

	reply, err := r.ReplyToText(ctx, "chat1", "alice", "oi")
	if err != nil {
		t.Fatal(err)
	}
	if reply != "Oi, alice!" {
		t.Errorf("reply = %q", reply)
	}

	// Both sides of the exchange are persisted
	lines, err := history.Read(ctx, "chat1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 || lines[0] != "alice: oi" || lines[1] != "Amelie: Oi, alice!" {
		t.Errorf("history = %v", lines)
	}

	// The prompt embeds the history block, inbound included
	req := model.lastReq
	if len(req.Parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(req.Parts))
	}
	if !strings.HasPrefix(req.Parts[0].Text, "Chat history (format: username then message; respond to the last message)\n\n") {
		t.Errorf("prompt missing header: %q", req.Parts[0].Text)
	}
	if !strings.Contains(req.Parts[0].Text, "alice: oi") {
		t.Errorf("prompt missing inbound line: %q", req.Parts[0].Text)
	}
	if req.Temperature != 0.9 || req.TopK != 93 || req.TopP != 0.95 || req.MaxOutputTokens != 1024 {
		t.Errorf("request carries wrong generation params: %+v", req)
	}
}

func TestResponder_ModelFailureDegradesToApology(t *testing.T) {
	ctx := context.Background()
	model := &fakeModel{err: errors.New("upstream boom")}
	r, history, _ := testResponder(t, model)

	reply, err := r.ReplyToText(ctx, "chat1", "alice", "oi")
	if err != nil {
		t.Fatalf("model failure must not surface as error, got %v", err)
	}
	if reply != config.ApologyReply {
		t.Errorf("reply = %q, want apology", reply)
	}

	// The inbound message is kept; no bot line is stored for the apology
	lines, err := history.Read(ctx, "chat1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || lines[0] != "alice: oi" {
		t.Errorf("history = %v", lines)
	}
}

func TestResponder_ReplyIsSanitizedBeforePersisting(t *testing.T) {
	ctx := context.Background()
	model := &fakeModel{reply: "[User1]: Tudo certo.\nalice: continua?"}
	r, history, _ := testResponder(t, model)

	reply, err := r.ReplyToText(ctx, "chat1", "alice", "oi")
	if err != nil {
		t.Fatal(err)
	}
	if reply != "Tudo certo." {
		t.Errorf("reply = %q, want sanitized", reply)
	}

	lines, err := history.Read(ctx, "chat1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if lines[len(lines)-1] != "Amelie: Tudo certo." {
		t.Errorf("stored reply not sanitized: %v", lines)
	}
}

func TestResponder_AudioTooLarge(t *testing.T) {
	ctx := context.Background()
	model := &fakeModel{reply: "should not be called"}
	r, history, _ := testResponder(t, model)

	media := domain.Media{
		Kind:     domain.MediaKindAudio,
		MimeType: "audio/ogg",
		Data:     make([]byte, config.MaxAudioBytes+1),
	}

	reply, handled, err := r.ReplyToMedia(ctx, "chat1", "alice", media)
	if err != nil {
		t.Fatal(err)
	}
	if !handled {
		t.Error("size rejection is a user-visible outcome, not a silent drop")
	}
	if reply != config.AudioTooLargeReply {
		t.Errorf("reply = %q, want size-limit message", reply)
	}
	if model.calls != 0 {
		t.Errorf("model called %d times, want 0", model.calls)
	}

	lines, err := history.Read(ctx, "chat1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 0 {
		t.Errorf("history mutated on rejection: %v", lines)
	}
}

func TestResponder_DisabledMediaIsSilentlyDropped(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		kind  string
		field string
	}{
		{"audio disabled", domain.MediaKindAudio, "mediaAudio"},
		{"image disabled", domain.MediaKindImage, "mediaImage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &fakeModel{reply: "should not be called"}
			r, history, chatConfigs := testResponder(t, model)

			if err := chatConfigs.Set(ctx, "chat1", tt.field, false); err != nil {
				t.Fatal(err)
			}

			media := domain.Media{Kind: tt.kind, MimeType: "application/octet-stream", Data: []byte{1}}
			reply, handled, err := r.ReplyToMedia(ctx, "chat1", "alice", media)
			if err != nil {
				t.Fatal(err)
			}
			if handled || reply != "" {
				t.Errorf("expected silent drop, got handled=%v reply=%q", handled, reply)
			}
			if model.calls != 0 {
				t.Errorf("model called %d times, want 0", model.calls)
			}

			lines, err := history.Read(ctx, "chat1", 0)
			if err != nil {
				t.Fatal(err)
			}
			if len(lines) != 0 {
				t.Errorf("history mutated on drop: %v", lines)
			}
		})
	}
}

func TestResponder_ImageTemperaturePinned(t *testing.T) {
	ctx := context.Background()
	model := &fakeModel{reply: "Uma foto de um gato."}
	r, history, _ := testResponder(t, model)

	media := domain.Media{
		Kind:     domain.MediaKindImage,
		MimeType: "image/jpeg",
		Data:     []byte{0xFF, 0xD8},
		Caption:  "o que é isso?",
	}

	reply, handled, err := r.ReplyToMedia(ctx, "chat1", "alice", media)
	if err != nil {
		t.Fatal(err)
	}
	if !handled || reply != "Uma foto de um gato." {
		t.Errorf("handled=%v reply=%q", handled, reply)
	}

	if model.lastReq.Temperature != config.MediaTemperature {
		t.Errorf("Temperature = %v, want pinned %v", model.lastReq.Temperature, config.MediaTemperature)
	}
	if len(model.lastReq.Parts) != 2 {
		t.Fatalf("expected media + text parts, got %d", len(model.lastReq.Parts))
	}
	if model.lastReq.Parts[0].MimeType != "image/jpeg" {
		t.Errorf("first part should carry the binary, got %+v", model.lastReq.Parts[0])
	}
	if !strings.Contains(model.lastReq.Parts[1].Text, "o que é isso?") {
		t.Errorf("caption missing from text part: %q", model.lastReq.Parts[1].Text)
	}

	lines, err := history.Read(ctx, "chat1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 {
		t.Errorf("expected inbound + outbound in history, got %v", lines)
	}
}

func TestResponder_AudioKeepsChatTemperature(t *testing.T) {
	ctx := context.Background()
	model := &fakeModel{reply: "Transcrição: olá."}
	r, _, chatConfigs := testResponder(t, model)

	if err := chatConfigs.Set(ctx, "chat1", "temperature", 0.3); err != nil {
		t.Fatal(err)
	}

	media := domain.Media{Kind: domain.MediaKindAudio, MimeType: "audio/ogg", Data: []byte{1, 2, 3}}
	if _, _, err := r.ReplyToMedia(ctx, "chat1", "alice", media); err != nil {
		t.Fatal(err)
	}

	if model.lastReq.Temperature != 0.3 {
		t.Errorf("Temperature = %v, want chat-configured 0.3", model.lastReq.Temperature)
	}
}
