package whatsapp

import (
	"strings"
	"testing"
)

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  int
	}{
		{"short text single part", "olá", 100, 1},
		{"exact limit single part", strings.Repeat("a", 10), 10, 1},
		{"over limit splits", strings.Repeat("a", 25), 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := SplitMessage(tt.text, tt.limit)
			if len(parts) != tt.want {
				t.Errorf("got %d parts, want %d: %v", len(parts), tt.want, parts)
			}
			for i, p := range parts {
				if len([]rune(p)) > tt.limit {
					t.Errorf("part %d exceeds limit: %d runes", i, len([]rune(p)))
				}
			}
		})
	}
}

func TestSplitMessage_PrefersLineBreaks(t *testing.T) {
	text := strings.Repeat("x", 6) + "\n" + strings.Repeat("y", 6)
	parts := SplitMessage(text, 10)
	if len(parts) != 2 {
		t.Fatalf("got %d parts: %v", len(parts), parts)
	}
	if parts[0] != strings.Repeat("x", 6) {
		t.Errorf("first part = %q, want break at newline", parts[0])
	}
}

func TestSplitMessage_NothingLost(t *testing.T) {
	text := strings.Repeat("palavra ", 50)
	joined := strings.Join(SplitMessage(text, 64), "")
	// Only newlines at cut points may be dropped
	if strings.ReplaceAll(joined, "\n", "") != strings.ReplaceAll(text, "\n", "") {
		t.Error("content lost during split")
	}
}
