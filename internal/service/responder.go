package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lucassaureliano/amelie/internal/config"
	"github.com/lucassaureliano/amelie/internal/domain"
)

const historyHeader = "Chat history (format: username then message; respond to the last message)\n\n"

const (
	audioInstructions = "First transcribe the audio, then summarize what was said. " +
		"Answer in the language of the conversation."
	imageInstructions = "Describe the image. Only state what you can see with certainty; " +
		"do not guess or invent details. Answer in the language of the conversation."
)

// Responder assembles model requests from chat state and turns raw replies
// into sanitized, persisted answers. Model failures never surface to the
// user: they degrade to the fixed apology string.
type Responder struct {
	history *HistoryService
	configs *ChatConfigService
	model   ModelClient
}

func NewResponder(history *HistoryService, configs *ChatConfigService, model ModelClient) *Responder {
	return &Responder{history: history, configs: configs, model: model}
}

// ReplyToText runs the full text pipeline: append inbound, read bounded
// history, build the prompt, invoke the model, sanitize and persist the reply.
func (r *Responder) ReplyToText(ctx context.Context, chatID, sender, text string) (string, error) {
	cfg, err := r.configs.Effective(ctx, chatID)
	if err != nil {
		return "", err
	}

	if err := r.history.Append(ctx, chatID, sender, text, false); err != nil {
		return "", err
	}

	lines, err := r.history.Read(ctx, chatID, 0)
	if err != nil {
		return "", err
	}

	req := domain.ModelRequest{
		Temperature:        cfg.Temperature,
		TopK:               cfg.TopK,
		TopP:               cfg.TopP,
		MaxOutputTokens:    cfg.MaxOutputTokens,
		SystemInstructions: cfg.SystemInstructions,
		Parts:              []domain.Part{{Text: buildTextPrompt(lines)}},
	}

	raw, err := r.model.Generate(ctx, req)
	if err != nil {
		slog.Error("model call failed", "chat_id", chatID, "error", err)
		return config.ApologyReply, nil
	}

	reply := Sanitize(raw)
	if err := r.history.Append(ctx, chatID, cfg.BotName, reply, true); err != nil {
		return "", err
	}
	return reply, nil
}

// ReplyToMedia handles an inbound image or audio attachment. handled=false
// means the media kind is disabled for this chat and the message was dropped
// without a reply or history mutation.
func (r *Responder) ReplyToMedia(ctx context.Context, chatID, sender string, m domain.Media) (reply string, handled bool, err error) {
	cfg, err := r.configs.Effective(ctx, chatID)
	if err != nil {
		return "", false, err
	}

	switch m.Kind {
	case domain.MediaKindImage:
		if !cfg.MediaImage {
			return "", false, nil
		}
	case domain.MediaKindAudio:
		if !cfg.MediaAudio {
			return "", false, nil
		}
		if len(m.Data) > config.MaxAudioBytes {
			// Rejected before dispatch: no history write, no model call
			return config.AudioTooLargeReply, true, nil
		}
	default:
		return "", false, nil
	}

	if err := r.history.Append(ctx, chatID, sender, inboundContent(m), false); err != nil {
		return "", false, err
	}

	lines, err := r.history.Read(ctx, chatID, 0)
	if err != nil {
		return "", false, err
	}

	req := domain.ModelRequest{
		Temperature:        cfg.Temperature,
		TopK:               cfg.TopK,
		TopP:               cfg.TopP,
		MaxOutputTokens:    cfg.MaxOutputTokens,
		SystemInstructions: cfg.SystemInstructions,
		Parts: []domain.Part{
			{Data: m.Data, MimeType: m.MimeType},
			{Text: buildMediaPrompt(m.Kind, lines, m.Caption)},
		},
	}
	if m.Kind == domain.MediaKindImage {
		// Pinned low regardless of chat config to reduce hallucination
		req.Temperature = config.MediaTemperature
	}

	raw, err := r.model.Generate(ctx, req)
	if err != nil {
		slog.Error("model call failed", "chat_id", chatID, "kind", m.Kind, "error", err)
		return config.ApologyReply, true, nil
	}

	out := Sanitize(raw)
	if err := r.history.Append(ctx, chatID, cfg.BotName, out, true); err != nil {
		return "", false, err
	}
	return out, true, nil
}

func buildTextPrompt(lines []string) string {
	return historyHeader + strings.Join(lines, "\n")
}

func buildMediaPrompt(kind string, lines []string, caption string) string {
	instructions := imageInstructions
	if kind == domain.MediaKindAudio {
		instructions = audioInstructions
	}

	var b strings.Builder
	b.WriteString(instructions)
	if caption != "" {
		b.WriteString(fmt.Sprintf("\n\nThe sender added this caption: %s", caption))
	}
	if len(lines) > 0 {
		b.WriteString("\n\n")
		b.WriteString(historyHeader)
		b.WriteString(strings.Join(lines, "\n"))
	}
	return b.String()
}

func inboundContent(m domain.Media) string {
	placeholder := "[imagem]"
	if m.Kind == domain.MediaKindAudio {
		placeholder = "[áudio]"
	}
	if m.Caption != "" {
		return placeholder + " " + m.Caption
	}
	return placeholder
}
