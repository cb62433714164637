package domain

import "time"

const (
	MessageTypeUser = "user"
	MessageTypeBot  = "bot"
)

// Message is one line of chat history. Rows are immutable once written;
// retention is enforced by trimming, never by update.
type Message struct {
	ID        uint   `gorm:"primaryKey"`
	ChatID    string `gorm:"index"`
	Sender    string
	Content   string
	Timestamp time.Time
	Type      string
}

// Line renders the message the way it appears inside a model prompt.
func (m Message) Line() string {
	return m.Sender + ": " + m.Content
}
