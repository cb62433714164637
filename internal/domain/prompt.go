package domain

// Prompt is a named system instruction ("persona") scoped to one chat.
// Text always starts with the synthesized "Your name is <name>. " preamble;
// the bot display name is derived from it on read.
type Prompt struct {
	ID     uint   `gorm:"primaryKey"`
	ChatID string `gorm:"uniqueIndex:idx_prompts_chat_name"`
	Name   string `gorm:"uniqueIndex:idx_prompts_chat_name"`
	Text   string
}
