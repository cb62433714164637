package domain

// ChatConfig is the stored per-chat parameter row. Fields are pointers so an
// absent value falls through to the static default at read time; rows are
// created lazily on first Set and mutated field by field.
type ChatConfig struct {
	ChatID          string `gorm:"primaryKey"`
	Temperature     *float64
	TopK            *float64
	TopP            *float64
	MaxOutputTokens *int
	MediaImage      *bool
	MediaAudio      *bool
	ActivePrompt    *string
}

// EffectiveConfig is the derived view handed to callers: the stored row merged
// over defaults plus the resolved instruction text and bot display name.
// Recomputed on every read, never persisted.
type EffectiveConfig struct {
	ChatID             string
	Temperature        float64
	TopK               float64
	TopP               float64
	MaxOutputTokens    int
	MediaImage         bool
	MediaAudio         bool
	ActivePrompt       string
	SystemInstructions string
	BotName            string
}
