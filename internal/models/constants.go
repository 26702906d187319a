package models

// Steps of the item creation conversation, in order.
const (
	StateAwaitingPhoto       = "awaiting_photo"
	StateAwaitingDescription = "awaiting_description"
	StateAwaitingPrice       = "awaiting_price"
)

// Keys inside UserState.TempData during item creation.
const (
	TempPhotoID     = "photo_id"
	TempDescription = "description"
)

// Callback data is "<action>_<item_id>".
const (
	ActionPrice   = "price"
	ActionShare   = "share"
	ActionBuy     = "buy"
	ActionComment = "comment"
)

const (
	ParseModeMarkdown = "Markdown"
	ParseModeHTML     = "HTML"
)

const (
	// DefaultRedisTTL время жизни состояния пользователя в Redis
	DefaultRedisTTL = 24 * 60 * 60 // 24 часа в секундах

	// RateLimitMessages количество сообщений в окне
	RateLimitMessages = 20

	// RateLimitWindow окно ограничения частоты сообщений
	RateLimitWindow = 60 // 1 минута в секундах

	// ListDescriptionLimit длина описания в списке /listitems
	ListDescriptionLimit = 50
)
