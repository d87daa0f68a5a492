// Package event publishes review and wishlist lifecycle events to Kafka.
// Publishing is fire-and-forget: a broker failure is logged and never fails
// the request that triggered it.
package event

import (
	"context"
	"log/slog"

	"github.com/katakonsumen/review-service/pkg/kafka"
	"github.com/katakonsumen/review-service/pkg/logger"
)

// Topics for the lifecycle events.
const (
	TopicReviewCreated   = "katakonsumen.review.created"
	TopicReviewDeleted   = "katakonsumen.review.deleted"
	TopicWishlistCreated = "katakonsumen.wishlist.created"
	TopicWishlistDeleted = "katakonsumen.wishlist.deleted"
)

const source = "review-service"

// ReviewCreatedData is the payload of a review.created event.
type ReviewCreatedData struct {
	ReviewID string `json:"review_id"`
	Username string `json:"username"`
	Source   string `json:"source"`
	Category string `json:"category"`
	Rating   int    `json:"rating"`
}

// ReviewDeletedData is the payload of a review.deleted event. For bulk
// deletions ReviewID is empty and Deleted carries the count.
type ReviewDeletedData struct {
	ReviewID string `json:"review_id,omitempty"`
	Username string `json:"username,omitempty"`
	Source   string `json:"source,omitempty"`
	Deleted  int64  `json:"deleted"`
}

// WishlistCreatedData is the payload of a wishlist.created event.
type WishlistCreatedData struct {
	EntryID  string `json:"entry_id"`
	Username string `json:"username"`
	Title    string `json:"title"`
}

// WishlistDeletedData is the payload of a wishlist.deleted event.
type WishlistDeletedData struct {
	Username string `json:"username"`
	Title    string `json:"title,omitempty"`
	Deleted  int64  `json:"deleted"`
}

// Publisher emits lifecycle events. A nil producer disables publishing,
// which keeps local development working without a broker.
type Publisher struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewPublisher returns a Publisher. producer may be nil.
func NewPublisher(producer *kafka.Producer, logger *slog.Logger) *Publisher {
	return &Publisher{producer: producer, logger: logger}
}

func (p *Publisher) ReviewCreated(ctx context.Context, data ReviewCreatedData) {
	p.publish(ctx, TopicReviewCreated, "review.created", data.ReviewID, "review", data)
}

func (p *Publisher) ReviewDeleted(ctx context.Context, data ReviewDeletedData) {
	p.publish(ctx, TopicReviewDeleted, "review.deleted", data.ReviewID, "review", data)
}

func (p *Publisher) WishlistCreated(ctx context.Context, data WishlistCreatedData) {
	p.publish(ctx, TopicWishlistCreated, "wishlist.created", data.EntryID, "wishlist", data)
}

func (p *Publisher) WishlistDeleted(ctx context.Context, data WishlistDeletedData) {
	p.publish(ctx, TopicWishlistDeleted, "wishlist.deleted", data.Username, "wishlist", data)
}

func (p *Publisher) publish(ctx context.Context, topic, eventType, aggregateID, aggregateType string, data any) {
	if p.producer == nil {
		return
	}

	evt, err := kafka.NewEvent(eventType, aggregateID, aggregateType, source, data)
	if err != nil {
		p.logger.Error("building event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
		return
	}

	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}

	if err := p.producer.Publish(ctx, topic, evt); err != nil {
		p.logger.Error("publishing event",
			slog.String("topic", topic),
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
	}
}
