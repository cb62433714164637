package service

import (
	"context"
	"testing"

	userrepo "github.com/lucassaureliano/amelie/internal/repository/user"
)

func testUsers(t *testing.T) *UserService {
	t.Helper()
	return NewUserService(userrepo.NewRepository(testDB(t)))
}

func TestUsers_NameResolutionOrder(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		pushName    string
		contactName string
		want        string
	}{
		{"push name wins", "alice", "Alice Silva", "alice"},
		{"contact name second", "", "Alice Silva", "Alice Silva"},
		{"fallback from id", "", "", "User9999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testUsers(t)
			u, err := s.FindOrCreate(ctx, "5511888889999@s.whatsapp.net", tt.pushName, tt.contactName)
			if err != nil {
				t.Fatal(err)
			}
			if u.Name != tt.want {
				t.Errorf("Name = %q, want %q", u.Name, tt.want)
			}
		})
	}
}

func TestUsers_NameIsASnapshot(t *testing.T) {
	ctx := context.Background()
	s := testUsers(t)

	first, err := s.FindOrCreate(ctx, "1@s.whatsapp.net", "old name", "")
	if err != nil {
		t.Fatal(err)
	}

	// A different push name later must not overwrite the snapshot
	second, err := s.FindOrCreate(ctx, "1@s.whatsapp.net", "new name", "")
	if err != nil {
		t.Fatal(err)
	}
	if second.Name != first.Name {
		t.Errorf("Name changed from %q to %q", first.Name, second.Name)
	}
}
