package whatsapp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"google.golang.org/protobuf/proto"
)

const MaxMessageLen = 65000

// SendText sends a potentially long message, splitting it into parts if needed.
func (c *Client) SendText(ctx context.Context, chat types.JID, text string) error {
	for _, part := range SplitMessage(text, MaxMessageLen) {
		_, err := c.wa.SendMessage(ctx, chat, &waE2E.Message{
			Conversation: proto.String(part),
		})
		if err != nil {
			return fmt.Errorf("send message: %w", err)
		}
	}
	return nil
}

// SplitMessage cuts text into chunks of at most limit runes, preferring to
// break on line boundaries.
func SplitMessage(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var parts []string
	for len(runes) > limit {
		cut := limit
		for i := limit - 1; i > limit/2; i-- {
			if runes[i] == '\n' {
				cut = i
				break
			}
		}
		parts = append(parts, strings.TrimRight(string(runes[:cut]), "\n"))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}

// StartTyping shows the composing indicator until the returned cancel
// function is called.
func (c *Client) StartTyping(ctx context.Context, chat types.JID) context.CancelFunc {
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(8 * time.Second)
		defer ticker.Stop()
		c.wa.SendChatPresence(ctx, chat, types.ChatPresenceComposing, types.ChatPresenceMediaText)
		for {
			select {
			case <-ctx.Done():
				c.wa.SendChatPresence(context.WithoutCancel(ctx), chat, types.ChatPresencePaused, types.ChatPresenceMediaText)
				return
			case <-ticker.C:
				c.wa.SendChatPresence(ctx, chat, types.ChatPresenceComposing, types.ChatPresenceMediaText)
			}
		}
	}()
	return cancel
}
