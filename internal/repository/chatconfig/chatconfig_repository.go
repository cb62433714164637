package chatconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/lucassaureliano/amelie/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Find(ctx context.Context, chatID string) (*domain.ChatConfig, error) {
	var cfg domain.ChatConfig
	err := r.db.WithContext(ctx).Where("chat_id = ?", chatID).First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find chat config: %w", err)
	}
	return &cfg, nil
}

func (r *gormRepository) SetField(ctx context.Context, chatID, column string, value any) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}},
		DoUpdates: clause.Assignments(map[string]any{column: value}),
	}).Model(&domain.ChatConfig{}).Create(map[string]any{
		"chat_id": chatID,
		column:    value,
	}).Error
	if err != nil {
		return fmt.Errorf("set chat config field: %w", err)
	}
	return nil
}
