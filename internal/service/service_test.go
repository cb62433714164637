package service

import (
	"testing"

	"github.com/lucassaureliano/amelie/internal/repository"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repository.Open(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatal(err)
	}
	return db
}
