package bot

import "context"

func (b *Bot) isAdmin(userID int64) bool {
	return userID != 0 && userID == b.config.Telegram.AdminID
}

func (b *Bot) sendMessage(ctx context.Context, chatID int64, text string) {
	if _, err := b.tgService.SendMessage(ctx, chatID, text); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}

// truncate cuts s to at most limit runes.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
