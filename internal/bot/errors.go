package bot

import (
	"errors"

	"storebot/internal/storage"
)

func (b *Bot) getErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, storage.ErrItemNotFound) {
		return "❌ Item not found!"
	}

	// Default error message
	return "❌ Something went wrong while processing your request. Please try again later."
}
