package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"storebot/internal/events"
	"storebot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

func (b *Bot) handleMessage(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	l := zerolog.Ctx(ctx)

	l.Debug().
		Int64("user_id", msg.From.ID).
		Str("username", msg.From.UserName).
		Str("text", msg.Text).
		Msg("Handling message")

	if msg.IsCommand() {
		b.handleCommand(ctx, update)
		return
	}

	// Non-command photos and texts only matter inside the admin's item
	// creation flow; everything else is dropped silently.
	if !b.isAdmin(msg.From.ID) {
		return
	}

	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, update)
		return
	}

	if msg.Text != "" {
		b.handleText(ctx, update)
	}
}

func (b *Bot) handleCommand(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message

	switch msg.Command() {
	case "start":
		b.handleStart(ctx, update)
	case "help":
		b.handleHelp(ctx, update)
	case "newitem":
		b.handleNewItem(ctx, update)
	case "listitems":
		b.handleListItems(ctx, update)
	case "deleteitem":
		b.handleDeleteItem(ctx, update)
	case "comment":
		b.handleComment(ctx, update)
	case "export":
		b.handleExport(ctx, update)
	default:
		zerolog.Ctx(ctx).Debug().Str("command", msg.Command()).Msg("Unknown command")
	}
}

func (b *Bot) handleStart(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message

	if b.isAdmin(msg.From.ID) {
		b.sendMessage(ctx, msg.Chat.ID,
			"👋 Welcome Admin!\n\n"+
				"Commands:\n"+
				"/newitem - Create a new clothing post\n"+
				"/listitems - View all items\n"+
				"/deleteitem [id] - Delete an item\n"+
				"/export - Export items to Excel\n"+
				"/help - Show help")
		return
	}

	b.sendMessage(ctx, msg.Chat.ID,
		fmt.Sprintf("👋 Welcome to our Clothing Store!\n\n"+
			"Join our channel: %s\n"+
			"Browse our latest collections and interact with posts!",
			b.config.Telegram.Channel))
}

func (b *Bot) handleHelp(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message

	if b.isAdmin(msg.From.ID) {
		b.sendMessage(ctx, msg.Chat.ID,
			"📝 Admin Guide:\n\n"+
				"1️⃣ /newitem - Start posting a new item\n"+
				"2️⃣ Send a photo of the clothing\n"+
				"3️⃣ Send description text\n"+
				"4️⃣ Send the price\n"+
				"5️⃣ Bot will post to channel with buttons\n\n"+
				"/listitems - See all posted items\n"+
				"/deleteitem [id] - Remove an item")
		return
	}

	b.sendMessage(ctx, msg.Chat.ID,
		fmt.Sprintf("Join our channel: %s\n"+
			"Click buttons on posts to:\n"+
			"💰 Ask Price\n"+
			"📤 Share\n"+
			"🛒 Buy Now\n"+
			"💬 Comment",
			b.config.Telegram.Channel))
}

// handleNewItem begins the three-step creation flow. A creation already in
// progress is discarded unconditionally.
func (b *Bot) handleNewItem(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message

	if !b.isAdmin(msg.From.ID) {
		b.sendMessage(ctx, msg.Chat.ID, "⛔ Admin only command!")
		return
	}

	if err := b.stateService.SetUserState(ctx, msg.From.ID, models.StateAwaitingPhoto, nil); err != nil {
		b.logger.Error().Err(err).Msg("Failed to start item creation")
		b.sendMessage(ctx, msg.Chat.ID, b.getErrorMessage(err))
		return
	}

	b.sendMessage(ctx, msg.Chat.ID, "📸 Step 1: Send me a photo of the clothing item")
}

func (b *Bot) handlePhoto(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message

	state, err := b.stateService.GetUserState(ctx, msg.From.ID)
	if err != nil || state == nil || state.CurrentStep != models.StateAwaitingPhoto {
		return
	}

	// Telegram sends several resolutions; the last entry is the largest.
	photo := msg.Photo[len(msg.Photo)-1]
	state.SetString(models.TempPhotoID, photo.FileID)

	if err := b.stateService.SetUserState(ctx, msg.From.ID, models.StateAwaitingDescription, state.TempData); err != nil {
		b.logger.Error().Err(err).Msg("Failed to advance creation state")
		return
	}

	b.sendMessage(ctx, msg.Chat.ID,
		"✍️ Step 2: Send me the description\n"+
			"(e.g., 'Summer Cotton T-Shirt\nComfortable casual wear, Size: S,M,L,XL')")
}

func (b *Bot) handleText(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message

	state, err := b.stateService.GetUserState(ctx, msg.From.ID)
	if err != nil || state == nil {
		return
	}

	switch state.CurrentStep {
	case models.StateAwaitingDescription:
		state.SetString(models.TempDescription, msg.Text)
		if err := b.stateService.SetUserState(ctx, msg.From.ID, models.StateAwaitingPrice, state.TempData); err != nil {
			b.logger.Error().Err(err).Msg("Failed to advance creation state")
			return
		}
		b.sendMessage(ctx, msg.Chat.ID,
			"💰 Step 3: Send me the price\n"+
				"(e.g., '25' or '25.99')")

	case models.StateAwaitingPrice:
		b.handlePriceInput(ctx, update, state)
	}
}

// handlePriceInput commits the item: the price text must parse as a positive
// number, but is stored as submitted (trimmed) to keep whatever formatting
// the admin typed.
func (b *Bot) handlePriceInput(ctx context.Context, update tgbotapi.Update, state *models.UserState) {
	msg := update.Message
	price := strings.TrimSpace(msg.Text)

	if !validPrice(price) {
		b.sendMessage(ctx, msg.Chat.ID, "❌ Invalid price. Please send a number (e.g., 25 or 25.99)")
		return
	}

	item := &models.Item{
		PhotoID:     state.GetString(models.TempPhotoID),
		Description: state.GetString(models.TempDescription),
		Price:       price,
	}

	if err := b.store.Create(ctx, item); err != nil {
		b.logger.Error().Err(err).Msg("Failed to create item")
		b.sendMessage(ctx, msg.Chat.ID, b.getErrorMessage(err))
		return
	}

	// Publishing is fire and forget; a transport failure is logged and the
	// item stays in the catalog.
	if err := b.publishItem(ctx, item); err != nil {
		if b.metrics != nil {
			b.metrics.ErrorsTotal.Inc()
		}
		b.logger.Error().Err(err).Str("item_id", item.ID).Msg("Failed to post item to channel")
	}

	b.sendMessage(ctx, msg.Chat.ID,
		fmt.Sprintf("✅ Item posted to channel!\n"+
			"Item ID: %s\n\n"+
			"Use /newitem to post another item", item.ID))

	if err := b.stateService.ClearUserState(ctx, msg.From.ID); err != nil {
		b.logger.Error().Err(err).Msg("Failed to clear creation state")
	}
}

func validPrice(price string) bool {
	n, err := strconv.ParseFloat(price, 64)
	return err == nil && n > 0
}

func (b *Bot) handleListItems(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message

	if !b.isAdmin(msg.From.ID) {
		b.sendMessage(ctx, msg.Chat.ID, "⛔ Admin only command!")
		return
	}

	items := b.store.List(ctx)
	if len(items) == 0 {
		b.sendMessage(ctx, msg.Chat.ID, "No items posted yet!")
		return
	}

	var message strings.Builder
	message.WriteString("📋 All Items:\n\n")
	for _, item := range items {
		message.WriteString(fmt.Sprintf("🆔 %s - $%s - %d comments\n", item.ID, item.Price, len(item.Comments)))
		message.WriteString(fmt.Sprintf("   %s...\n\n", truncate(item.Description, models.ListDescriptionLimit)))
	}

	b.sendMessage(ctx, msg.Chat.ID, message.String())
}

func (b *Bot) handleDeleteItem(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message

	if !b.isAdmin(msg.From.ID) {
		b.sendMessage(ctx, msg.Chat.ID, "⛔ Admin only command!")
		return
	}

	args := strings.Fields(msg.CommandArguments())
	if len(args) < 1 {
		b.sendMessage(ctx, msg.Chat.ID, "Usage: /deleteitem [item_id]")
		return
	}

	itemID := args[0]
	if err := b.store.Delete(ctx, itemID); err != nil {
		b.sendMessage(ctx, msg.Chat.ID, b.getErrorMessage(err))
		return
	}

	if b.metrics != nil {
		b.metrics.ItemsDeleted.Inc()
	}
	if err := b.eventBus.PublishJSON(events.EventItemDeleted, events.ItemEventPayload{ItemID: itemID}); err != nil {
		b.logger.Error().Err(err).Msg("Failed to publish item deleted event")
	}

	b.sendMessage(ctx, msg.Chat.ID, fmt.Sprintf("✅ Item %s deleted!", itemID))
}

// handleComment appends a comment to an item. Open to every user; the admin
// is notified through the comment_added event.
func (b *Bot) handleComment(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message

	args := strings.Fields(msg.CommandArguments())
	if len(args) < 2 {
		b.sendMessage(ctx, msg.Chat.ID,
			"Usage: /comment [item_id] [your comment]\n"+
				"Example: /comment 1 I love this item!")
		return
	}

	itemID := args[0]
	commentText := strings.Join(args[1:], " ")

	comment := models.Comment{
		User:   msg.From.FirstName,
		UserID: msg.From.ID,
		Text:   commentText,
	}

	if err := b.store.AppendComment(ctx, itemID, comment); err != nil {
		b.sendMessage(ctx, msg.Chat.ID, b.getErrorMessage(err))
		return
	}

	if b.metrics != nil {
		b.metrics.CommentsAdded.Inc()
	}

	b.sendMessage(ctx, msg.Chat.ID,
		fmt.Sprintf("✅ Comment added to item %s!\n\n"+
			"The seller will see your comment.", itemID))

	if err := b.eventBus.PublishJSON(events.EventCommentAdded, events.CommentEventPayload{
		ItemID:   itemID,
		User:     msg.From.FirstName,
		Username: msg.From.UserName,
		UserID:   msg.From.ID,
		Text:     commentText,
	}); err != nil {
		b.logger.Error().Err(err).Msg("Failed to publish comment event")
	}
}
