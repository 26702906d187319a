package events

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	EventItemPublished = "item_published"
	EventItemDeleted   = "item_deleted"
	EventCommentAdded  = "comment_added"
)

// ItemEventPayload is the item snapshot carried by item lifecycle events.
type ItemEventPayload struct {
	ItemID      string `json:"item_id"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

// CommentEventPayload describes a freshly appended comment for consumers
// such as the admin notifier.
type CommentEventPayload struct {
	ItemID   string `json:"item_id"`
	User     string `json:"user"`
	Username string `json:"username,omitempty"`
	UserID   int64  `json:"user_id"`
	Text     string `json:"text"`
}

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
