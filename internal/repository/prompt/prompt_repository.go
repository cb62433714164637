package prompt

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

func (r *gormRepository) Upsert(ctx context.Context, p *domain.Prompt) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"text"}),
	}).Create(p).Error
	if err != nil {
		return fmt.Errorf("upsert prompt: %w", err)
	}
	return nil
}

func (r *gormRepository) FindByName(ctx context.Context, chatID, name string) (*domain.Prompt, error) {
	var p domain.Prompt
	err := r.db.WithContext(ctx).
		Where("chat_id = ? AND name = ?", chatID, name).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find prompt: %w", err)
	}
	return &p, nil
}

func (r *gormRepository) FindByChatID(ctx context.Context, chatID string) ([]domain.Prompt, error) {
	var prompts []domain.Prompt
	err := r.db.WithContext(ctx).Where("chat_id = ?", chatID).Find(&prompts).Error
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	return prompts, nil
}
