package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lucassaureliano/amelie/internal/domain"
	"github.com/lucassaureliano/amelie/internal/repository/message"
)

// HistoryService owns the rotating message history. Retention is bounded per
// chat: after every insert the oldest rows beyond 2×maxPairs (user and bot
// lines combined) are deleted.
type HistoryService struct {
	messages message.Repository
	maxPairs int
}

func NewHistoryService(messages message.Repository, maxPairs int) *HistoryService {
	return &HistoryService{messages: messages, maxPairs: maxPairs}
}

// Append stores one message and trims the chat down to the retention bound.
// Trim runs as a separate statement after the insert: a crash in between
// leaves extra rows behind rather than losing the new message.
func (s *HistoryService) Append(ctx context.Context, chatID, sender, content string, isBot bool) error {
	msgType := domain.MessageTypeUser
	if isBot {
		msgType = domain.MessageTypeBot
	}

	msg := &domain.Message{
		ChatID:    chatID,
		Sender:    sender,
		Content:   content,
		Timestamp: time.Now(),
		Type:      msgType,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return fmt.Errorf("append history: %w", err)
	}

	if err := s.messages.DeleteOldest(ctx, chatID, 2*s.maxPairs); err != nil {
		return fmt.Errorf("trim history: %w", err)
	}
	return nil
}

// Read returns the newest 2×limit messages restored to chronological order,
// rendered as "sender: content" lines.
func (s *HistoryService) Read(ctx context.Context, chatID string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = s.maxPairs
	}

	msgs, err := s.messages.FindNewest(ctx, chatID, 2*limit)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	// FindNewest returns newest first; prompts want oldest first
	lines := make([]string, len(msgs))
	for i, m := range msgs {
		lines[len(msgs)-1-i] = m.Line()
	}
	return lines, nil
}

// Reset deletes every message for the chat. Config and prompts stay intact.
func (s *HistoryService) Reset(ctx context.Context, chatID string) error {
	if err := s.messages.DeleteByChatID(ctx, chatID); err != nil {
		return fmt.Errorf("reset history: %w", err)
	}
	return nil
}
