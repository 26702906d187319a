package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics структура для метрик Prometheus
type Metrics struct {
	MessagesProcessed    prometheus.Counter
	CallbacksProcessed   prometheus.Counter
	ItemsPublished       prometheus.Counter
	ItemsDeleted         prometheus.Counter
	CommentsAdded        prometheus.Counter
	ErrorsTotal          prometheus.Counter
	UpdateProcessingTime prometheus.Histogram
}

// NewMetrics создает новые метрики
func NewMetrics() *Metrics {
	return &Metrics{
		MessagesProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "storefront_bot_messages_processed_total",
			Help: "Total number of messages processed",
		}),
		CallbacksProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "storefront_bot_callbacks_processed_total",
			Help: "Total number of button callbacks processed",
		}),
		ItemsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "storefront_bot_items_published_total",
			Help: "Total number of items posted to the channel",
		}),
		ItemsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "storefront_bot_items_deleted_total",
			Help: "Total number of items deleted",
		}),
		CommentsAdded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "storefront_bot_comments_added_total",
			Help: "Total number of comments added to items",
		}),
		ErrorsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "storefront_bot_errors_total",
			Help: "Total number of handler errors and panics",
		}),
		UpdateProcessingTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "storefront_bot_update_processing_time_seconds",
			Help:    "Time spent processing updates",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
