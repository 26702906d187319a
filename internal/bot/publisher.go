package bot

import (
	"context"
	"fmt"

	"storebot/internal/events"
	"storebot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// publishItem posts the item photo to the public channel with the caption
// and the four interaction buttons. Delivery is not retried.
func (b *Bot) publishItem(ctx context.Context, item *models.Item) error {
	caption := fmt.Sprintf("%s\n\n🆔 Item: %s", item.Description, item.ID)

	_, err := b.tgService.SendPhotoToChannel(ctx, b.config.Telegram.Channel, item.PhotoID, caption, itemKeyboard(item.ID))
	if err != nil {
		return fmt.Errorf("post item %s to channel: %w", item.ID, err)
	}

	if b.metrics != nil {
		b.metrics.ItemsPublished.Inc()
	}
	if err := b.eventBus.PublishJSON(events.EventItemPublished, events.ItemEventPayload{
		ItemID:      item.ID,
		Description: item.Description,
		Price:       item.Price,
	}); err != nil {
		b.logger.Error().Err(err).Msg("Failed to publish item event")
	}

	b.logger.Info().Str("item_id", item.ID).Str("channel", b.config.Telegram.Channel).Msg("Item posted to channel")
	return nil
}

// itemKeyboard builds the 2x2 button layout; each payload is "<action>_<id>".
func itemKeyboard(itemID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💰 Ask Price", models.ActionPrice+"_"+itemID),
			tgbotapi.NewInlineKeyboardButtonData("📤 Share", models.ActionShare+"_"+itemID),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛒 Buy Now", models.ActionBuy+"_"+itemID),
			tgbotapi.NewInlineKeyboardButtonData("💬 Comment", models.ActionComment+"_"+itemID),
		),
	)
}
