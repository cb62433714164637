package config

import "time"

const (
	// Static generation defaults, applied when a chat has no stored value
	DefaultTemperature     = 0.9
	DefaultTopK            = 93.0
	DefaultTopP            = 0.95
	DefaultMaxOutputTokens = 1024

	// Image descriptions run at a fixed low temperature regardless of
	// chat config, to keep the model from inventing details
	MediaTemperature = 0.2

	// Audio payload cap; larger files are rejected before dispatch
	MaxAudioBytes = 20 * 1024 * 1024

	// AI request timeout
	RequestTimeout = 90 * time.Second

	// Command prefix
	CommandPrefix = "!"

	// Fixed reply when the model fails or returns nothing usable
	ApologyReply = "Desculpe, não consegui gerar uma resposta. Tente novamente."

	// Sent when an audio file is over the size cap
	AudioTooLargeReply = "Desculpe, esse áudio é grande demais (limite de 20 MB)."

	// Sent when a command argument fails validation
	InvalidValueReply = "Valor inválido. Use um número, por exemplo: !config set temperature 0.7"
)
