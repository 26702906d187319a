package service

import (
	"context"

	"storebot/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// Telegram caps bots around 30 messages per second; staying under that keeps
// long-poll handlers from tripping flood errors on comment bursts.
const (
	sendRateLimit = 25
	sendRateBurst = 5
)

// TelegramService wraps the bot API with send helpers and an outbound rate
// limiter shared by all sends. The context bounds the limiter wait, so a
// cancelled update aborts instead of queueing behind the bucket.
type TelegramService struct {
	bot     domain.TelegramSender
	limiter *rate.Limiter
}

func NewTelegramService(bot domain.TelegramSender) *TelegramService {
	return &TelegramService{
		bot:     bot,
		limiter: rate.NewLimiter(rate.Limit(sendRateLimit), sendRateBurst),
	}
}

func (s *TelegramService) Send(ctx context.Context, c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return tgbotapi.Message{}, err
	}
	return s.bot.Send(c)
}

func (s *TelegramService) Request(ctx context.Context, c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.bot.Request(c)
}

func (s *TelegramService) SendMessage(ctx context.Context, chatID int64, text string) (tgbotapi.Message, error) {
	return s.Send(ctx, tgbotapi.NewMessage(chatID, text))
}

func (s *TelegramService) SendWithInlineKeyboard(
	ctx context.Context,
	chatID int64,
	text string,
	keyboard tgbotapi.InlineKeyboardMarkup,
) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	return s.Send(ctx, msg)
}

// SendPhotoToChannel posts a photo by file ID to a channel addressed by
// username (for example "@mystore"), with caption and inline buttons.
func (s *TelegramService) SendPhotoToChannel(
	ctx context.Context,
	channel string,
	photoID string,
	caption string,
	keyboard tgbotapi.InlineKeyboardMarkup,
) (tgbotapi.Message, error) {
	photo := tgbotapi.NewPhotoToChannel(channel, tgbotapi.FileID(photoID))
	photo.Caption = caption
	photo.ReplyMarkup = keyboard
	return s.Send(ctx, photo)
}

func (s *TelegramService) AnswerCallback(ctx context.Context, callbackID, text string) error {
	callback := tgbotapi.NewCallback(callbackID, text)
	_, err := s.Request(ctx, callback)
	return err
}

// AnswerCallbackAlert answers a callback with a popup the user has to
// dismiss, used for price replies and not-found notices.
func (s *TelegramService) AnswerCallbackAlert(ctx context.Context, callbackID, text string) error {
	callback := tgbotapi.NewCallbackWithAlert(callbackID, text)
	_, err := s.Request(ctx, callback)
	return err
}

func (s *TelegramService) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return s.bot.GetUpdatesChan(config)
}

func (s *TelegramService) GetSelf() tgbotapi.User {
	return s.bot.GetSelf()
}

func (s *TelegramService) StopReceivingUpdates() {
	s.bot.StopReceivingUpdates()
}
