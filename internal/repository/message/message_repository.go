package message

import (
	"context"
	"fmt"

	"github.com/lucassaureliano/amelie/internal/domain"
	"gorm.io/gorm"
)

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, msg *domain.Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (r *gormRepository) FindNewest(ctx context.Context, chatID string, limit int) ([]domain.Message, error) {
	var msgs []domain.Message
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("find messages: %w", err)
	}
	return msgs, nil
}

func (r *gormRepository) DeleteOldest(ctx context.Context, chatID string, keep int) error {
	// Keep the newest rows by excluding them from the delete. id breaks ties
	// between messages written within the same timestamp tick.
	err := r.db.WithContext(ctx).Exec(
		`DELETE FROM messages WHERE chat_id = ? AND id NOT IN (
			SELECT id FROM messages WHERE chat_id = ? ORDER BY timestamp DESC, id DESC LIMIT ?
		)`, chatID, chatID, keep).Error
	if err != nil {
		return fmt.Errorf("trim messages: %w", err)
	}
	return nil
}

func (r *gormRepository) DeleteByChatID(ctx context.Context, chatID string) error {
	if err := r.db.WithContext(ctx).Where("chat_id = ?", chatID).Delete(&domain.Message{}).Error; err != nil {
		return fmt.Errorf("delete messages: %w", err)
	}
	return nil
}
