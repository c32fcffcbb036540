package bot

import "strings"

// telegramMessageLimit is the hard cap Telegram places on message text.
const telegramMessageLimit = 4096

// splitText breaks long text into sendable chunks, preferring newline
// boundaries so lists are not cut mid-line.
func splitText(text string, max int) []string {
	if len(text) <= max {
		return []string{text}
	}

	var parts []string
	for len(text) > max {
		cut := strings.LastIndex(text[:max], "\n")
		if cut <= 0 {
			cut = max
		}
		parts = append(parts, strings.TrimRight(text[:cut], "\n"))
		text = strings.TrimLeft(text[cut:], "\n")
	}
	if text != "" {
		parts = append(parts, text)
	}
	return parts
}
