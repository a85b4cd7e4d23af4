package ws

import "github.com/hokmlab/hokm/internal/bot"

// parseDifficulty applies the wire default when the client omits the
// field.
func parseDifficulty(s string) (bot.Difficulty, error) {
	if s == "" {
		return bot.Medium, nil
	}
	return bot.ParseDifficulty(s)
}
