package repository

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/lucassaureliano/amelie/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens the embedded database and ensures the schema exists. There is no
// migration mechanism: new columns default through the read-time merge over
// static defaults.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(
		&domain.Message{},
		&domain.Prompt{},
		&domain.ChatConfig{},
		&domain.User{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return db, nil
}
