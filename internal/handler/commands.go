package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/lucassaureliano/amelie/internal/config"
	"github.com/lucassaureliano/amelie/internal/middleware"
	"github.com/lucassaureliano/amelie/internal/whatsapp"
)

const helpText = `Comandos disponíveis:
!reset — apaga o histórico da conversa
!prompt set <nome> <texto> — define uma persona
!prompt get <nome> — mostra uma persona
!prompt list — lista as personas
!prompt use <nome> — ativa uma persona
!prompt clear — desativa a persona ativa
!persona [nome] — mostra ou ativa a persona
!config set <par> <valor> — ajusta um parâmetro
!config get — mostra a configuração atual
!users — lista os participantes conhecidos
!help — mostra esta mensagem`

var numericParams = map[string]bool{
	"temperature":     true,
	"topK":            true,
	"topP":            true,
	"maxOutputTokens": true,
}

var boolParams = map[string]bool{
	"mediaImage": true,
	"mediaAudio": true,
}

// HandleCommand parses and dispatches a "!" command. Validation of argument
// names and values happens here, before any state is touched.
func (h *Handler) HandleCommand(ctx context.Context, msg *whatsapp.Message) {
	raw := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(msg.Text), config.CommandPrefix))
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return
	}

	chatID := msg.Chat.String()

	switch fields[0] {
	case "reset":
		h.cmdReset(ctx, msg, chatID)
	case "prompt":
		h.cmdPrompt(ctx, msg, chatID, raw, fields[1:])
	case "persona":
		h.cmdPersona(ctx, msg, chatID, fields[1:])
	case "config":
		h.cmdConfig(ctx, msg, chatID, fields[1:])
	case "users":
		h.cmdUsers(ctx, msg)
	case "help":
		h.reply(ctx, msg, helpText)
	default:
		h.reply(ctx, msg, "Comando desconhecido. Use !help para ver os comandos.")
	}
}

func (h *Handler) cmdReset(ctx context.Context, msg *whatsapp.Message, chatID string) {
	if err := h.history.Reset(ctx, chatID); err != nil {
		slog.Error("reset history", "chat_id", chatID, "error", err)
		h.reply(ctx, msg, config.ApologyReply)
		return
	}
	h.reply(ctx, msg, "Histórico da conversa apagado.")
}

func (h *Handler) cmdPrompt(ctx context.Context, msg *whatsapp.Message, chatID, raw string, args []string) {
	if len(args) == 0 {
		h.reply(ctx, msg, "Use: !prompt set|get|list|use|clear")
		return
	}

	switch args[0] {
	case "set":
		// Body is everything after the name, spacing preserved
		parts := strings.SplitN(raw, " ", 4)
		if len(parts) < 4 {
			h.reply(ctx, msg, "Use: !prompt set <nome> <texto>")
			return
		}
		name, body := parts[2], parts[3]
		if err := h.prompts.Define(ctx, chatID, name, body); err != nil {
			slog.Error("define prompt", "chat_id", chatID, "error", err)
			h.reply(ctx, msg, config.ApologyReply)
			return
		}
		h.reply(ctx, msg, fmt.Sprintf("Persona %q salva.", name))

	case "get":
		if len(args) < 2 {
			h.reply(ctx, msg, "Use: !prompt get <nome>")
			return
		}
		p, err := h.prompts.Fetch(ctx, chatID, args[1])
		if err != nil {
			slog.Error("fetch prompt", "chat_id", chatID, "error", err)
			h.reply(ctx, msg, config.ApologyReply)
			return
		}
		if p == nil {
			h.reply(ctx, msg, fmt.Sprintf("Persona %q não encontrada.", args[1]))
			return
		}
		h.reply(ctx, msg, p.Text)

	case "list":
		prompts, err := h.prompts.List(ctx, chatID)
		if err != nil {
			slog.Error("list prompts", "chat_id", chatID, "error", err)
			h.reply(ctx, msg, config.ApologyReply)
			return
		}
		if len(prompts) == 0 {
			h.reply(ctx, msg, "Nenhuma persona definida. Use !prompt set <nome> <texto>.")
			return
		}
		names := make([]string, len(prompts))
		for i, p := range prompts {
			names[i] = "- " + p.Name
		}
		h.reply(ctx, msg, "Personas:\n"+strings.Join(names, "\n"))

	case "use":
		if len(args) < 2 {
			h.reply(ctx, msg, "Use: !prompt use <nome>")
			return
		}
		h.activatePrompt(ctx, msg, chatID, args[1])

	case "clear":
		if err := h.prompts.Deactivate(ctx, chatID); err != nil {
			slog.Error("deactivate prompt", "chat_id", chatID, "error", err)
			h.reply(ctx, msg, config.ApologyReply)
			return
		}
		h.reply(ctx, msg, "Persona desativada.")

	default:
		h.reply(ctx, msg, "Use: !prompt set|get|list|use|clear")
	}
}

// cmdPersona is the shortcut surface: bare shows the active persona, with a
// name it behaves like "!prompt use".
func (h *Handler) cmdPersona(ctx context.Context, msg *whatsapp.Message, chatID string, args []string) {
	if len(args) == 0 {
		eff, err := h.chatConfigs.Effective(ctx, chatID)
		if err != nil {
			slog.Error("resolve config", "chat_id", chatID, "error", err)
			h.reply(ctx, msg, config.ApologyReply)
			return
		}
		if eff.ActivePrompt == "" {
			h.reply(ctx, msg, "Nenhuma persona ativa.")
			return
		}
		h.reply(ctx, msg, fmt.Sprintf("Persona ativa: %s", eff.ActivePrompt))
		return
	}
	h.activatePrompt(ctx, msg, chatID, args[0])
}

func (h *Handler) activatePrompt(ctx context.Context, msg *whatsapp.Message, chatID, name string) {
	ok, err := h.prompts.Activate(ctx, chatID, name)
	if err != nil {
		slog.Error("activate prompt", "chat_id", chatID, "error", err)
		h.reply(ctx, msg, config.ApologyReply)
		return
	}
	if !ok {
		h.reply(ctx, msg, fmt.Sprintf("Persona %q não encontrada. Use !prompt list.", name))
		return
	}
	h.reply(ctx, msg, fmt.Sprintf("Persona %q ativada.", name))
}

func (h *Handler) cmdConfig(ctx context.Context, msg *whatsapp.Message, chatID string, args []string) {
	if len(args) == 0 {
		h.reply(ctx, msg, "Use: !config set <parâmetro> <valor> ou !config get")
		return
	}

	switch args[0] {
	case "get":
		eff, err := h.chatConfigs.Effective(ctx, chatID)
		if err != nil {
			slog.Error("resolve config", "chat_id", chatID, "error", err)
			h.reply(ctx, msg, config.ApologyReply)
			return
		}
		active := eff.ActivePrompt
		if active == "" {
			active = "(nenhuma)"
		}
		h.reply(ctx, msg, fmt.Sprintf(
			"Configuração atual:\ntemperature: %g\ntopK: %g\ntopP: %g\nmaxOutputTokens: %d\nmediaImage: %t\nmediaAudio: %t\npersona: %s",
			eff.Temperature, eff.TopK, eff.TopP, eff.MaxOutputTokens,
			eff.MediaImage, eff.MediaAudio, active,
		))

	case "set":
		if len(args) < 3 {
			h.reply(ctx, msg, "Use: !config set <parâmetro> <valor>")
			return
		}
		h.setConfigParam(ctx, msg, chatID, args[1], args[2])

	default:
		h.reply(ctx, msg, "Use: !config set <parâmetro> <valor> ou !config get")
	}
}

func (h *Handler) setConfigParam(ctx context.Context, msg *whatsapp.Message, chatID, param, rawValue string) {
	var value any
	switch {
	case numericParams[param]:
		f, err := strconv.ParseFloat(rawValue, 64)
		if err != nil {
			h.reply(ctx, msg, config.InvalidValueReply)
			return
		}
		if param == "maxOutputTokens" {
			value = int(f)
		} else {
			value = f
		}
	case boolParams[param]:
		b, err := strconv.ParseBool(rawValue)
		if err != nil {
			h.reply(ctx, msg, "Valor inválido. Use true ou false.")
			return
		}
		value = b
	default:
		h.reply(ctx, msg, fmt.Sprintf("Parâmetro desconhecido: %s", param))
		return
	}

	if err := h.chatConfigs.Set(ctx, chatID, param, value); err != nil {
		slog.Error("set config", "chat_id", chatID, "param", param, "error", err)
		h.reply(ctx, msg, config.ApologyReply)
		return
	}
	h.reply(ctx, msg, fmt.Sprintf("%s definido como %s.", param, rawValue))
}

func (h *Handler) cmdUsers(ctx context.Context, msg *whatsapp.Message) {
	if !msg.IsGroup {
		if u := middleware.GetUser(ctx); u != nil {
			h.reply(ctx, msg, fmt.Sprintf("Usuários conhecidos:\n- %s", u.Name))
		}
		return
	}

	ids, err := h.client.GroupParticipants(ctx, msg.Chat)
	if err != nil {
		slog.Error("list participants", "chat_id", msg.Chat.String(), "error", err)
		h.reply(ctx, msg, config.ApologyReply)
		return
	}

	known, err := h.users.GetMany(ctx, ids)
	if err != nil {
		slog.Error("load users", "chat_id", msg.Chat.String(), "error", err)
		h.reply(ctx, msg, config.ApologyReply)
		return
	}
	if len(known) == 0 {
		h.reply(ctx, msg, "Ainda não conheço ninguém neste grupo.")
		return
	}

	lines := make([]string, len(known))
	for i, u := range known {
		lines[i] = "- " + u.Name
	}
	h.reply(ctx, msg, "Usuários conhecidos:\n"+strings.Join(lines, "\n"))
}
