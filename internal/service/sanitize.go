package service

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/lucassaureliano/amelie/internal/config"
)

var (
	// "[Importância: 0.8]" style annotations the model sometimes prepends
	importanceTag = regexp.MustCompile(`^\s*\[[Ii]mport[âa]ncia:?\s*[0-9.,]+\]\s*`)

	// Echo of the history line format back at the start of the reply
	userEcho = regexp.MustCompile(`^\s*\[User\d+\]:\s*`)

	// A speaker label on a later line means the model started writing the
	// conversation on behalf of other participants
	speakerLabel = regexp.MustCompile(`\n\s*\[?[\p{L}\p{N}_]+\]?:\s`)
)

// Sanitize cleans a raw model reply before it is stored and relayed: leading
// annotations are stripped, the reply is cut at the first continued-dialogue
// speaker label, emoji are removed, and an empty result becomes the fixed
// apology. Sanitize(Sanitize(x)) == Sanitize(x) for any input.
func Sanitize(raw string) string {
	// Emoji must go first: removing one can expose an echo or speaker
	// label that the later passes would otherwise miss on the first run
	out := stripEmoji(raw)

	for {
		prev := out
		out = importanceTag.ReplaceAllString(out, "")
		out = userEcho.ReplaceAllString(out, "")
		if out == prev {
			break
		}
	}

	if loc := speakerLabel.FindStringIndex(out); loc != nil {
		out = out[:loc[0]]
	}

	out = strings.TrimSpace(out)

	if !hasText(out) {
		return config.ApologyReply
	}
	return out
}

func stripEmoji(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 0x1F000 && r <= 0x1FAFF: // pictographs, emoticons, symbols
			return -1
		case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
			return -1
		case r == 0xFE0F || r == 0xFE0E || r == 0x200D: // variation selectors, ZWJ
			return -1
		}
		return r
	}, s)
}

func hasText(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
