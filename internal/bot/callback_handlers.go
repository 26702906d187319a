package bot

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"storebot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

func (b *Bot) handleCallbackQuery(ctx context.Context, update tgbotapi.Update) {
	callback := update.CallbackQuery
	l := zerolog.Ctx(ctx)

	l.Debug().
		Int64("user_id", callback.From.ID).
		Str("data", callback.Data).
		Msg("Handling callback query")

	action, itemID, ok := strings.Cut(callback.Data, "_")
	if !ok {
		l.Warn().Str("callback_data", callback.Data).Msg("Unknown callback data")
		b.answerCallback(ctx, callback.ID, "")
		return
	}

	item, err := b.store.Get(ctx, itemID)
	if err != nil {
		b.answerCallbackAlert(ctx, callback.ID, "❌ Item not found!")
		return
	}

	if action == models.ActionPrice {
		// Transient popup, nothing is posted to the chat.
		b.answerCallbackAlert(ctx, callback.ID, fmt.Sprintf("💰 Price: $%s", item.Price))
		return
	}

	// The remaining actions reply in the chat the button was pressed in.
	// Telegram omits the origin message for channel posts older than 48h.
	if callback.Message == nil || callback.Message.Chat == nil {
		b.answerCallbackAlert(ctx, callback.ID, "⚠️ This post is too old. Message me directly to use this button!")
		return
	}
	chatID := callback.Message.Chat.ID

	switch action {
	case models.ActionShare:
		b.answerCallback(ctx, callback.ID, "")
		b.sendShareLinks(ctx, chatID, item)

	case models.ActionBuy:
		b.answerCallback(ctx, callback.ID, "")
		b.sendBuyInstructions(ctx, chatID, item)

	case models.ActionComment:
		b.answerCallback(ctx, callback.ID, "")
		b.sendCommentInstructions(ctx, chatID, item.ID)

	default:
		l.Warn().Str("callback_data", callback.Data).Msg("Unknown callback action")
		b.answerCallback(ctx, callback.ID, "")
	}
}

// sendShareLinks replies with deep links that pre-fill the share text on
// Telegram and WhatsApp. The platform library's URL encoding is the only
// sanitization applied to the description.
func (b *Bot) sendShareLinks(ctx context.Context, chatID int64, item *models.Item) {
	channel := b.config.Telegram.Channel
	shareText := fmt.Sprintf("Check out this item! 👕\n\n%s", item.Description)

	telegramLink := fmt.Sprintf("https://t.me/share/url?url=%s&text=%s",
		url.QueryEscape(channel), url.QueryEscape(shareText))
	whatsappLink := fmt.Sprintf("https://wa.me/?text=%s",
		url.QueryEscape(shareText+" "+channel))

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("📱 Share on Telegram", telegramLink),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("💚 Share on WhatsApp", whatsappLink),
		),
	)

	if _, err := b.tgService.SendWithInlineKeyboard(ctx, chatID, "📤 Share this item with your friends!", keyboard); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send share links")
	}
}

func (b *Bot) sendBuyInstructions(ctx context.Context, chatID int64, item *models.Item) {
	seller := b.config.Telegram.SellerContact

	text := fmt.Sprintf("🛒 To purchase this item:\n\n"+
		"Contact me directly: @%s\n\n"+
		"Item ID: %s\n"+
		"Price: $%s", seller, item.ID, item.Price)

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("💬 Message Seller", "https://t.me/"+seller),
		),
	)

	if _, err := b.tgService.SendWithInlineKeyboard(ctx, chatID, text, keyboard); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send buy instructions")
	}
}

// sendCommentInstructions points the user at the /comment command; the
// button itself cannot collect text.
func (b *Bot) sendCommentInstructions(ctx context.Context, chatID int64, itemID string) {
	b.sendMessage(ctx, chatID,
		fmt.Sprintf("💬 To leave a comment about item %s:\n\n"+
			"Send a message to me starting with:\n"+
			"/comment %s [your comment]\n\n"+
			"Example:\n"+
			"/comment %s Looks great! Do you have it in blue?", itemID, itemID, itemID))
}

func (b *Bot) answerCallback(ctx context.Context, callbackID, text string) {
	if err := b.tgService.AnswerCallback(ctx, callbackID, text); err != nil {
		b.logger.Error().Err(err).Msg("Failed to answer callback")
	}
}

func (b *Bot) answerCallbackAlert(ctx context.Context, callbackID, text string) {
	if err := b.tgService.AnswerCallbackAlert(ctx, callbackID, text); err != nil {
		b.logger.Error().Err(err).Msg("Failed to answer callback")
	}
}
