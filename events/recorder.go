package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"portfolio/models"
)

var errMalformed = errors.New("malformed like event")

// Recorder consumes like events and stores them as history rows.
type Recorder struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewRecorder(db *gorm.DB, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{db: db, logger: logger}
}

// Record stores one event.
func (r *Recorder) Record(ctx context.Context, ev LikeEvent) error {
	row := models.LikeEvent{
		ItemID: ev.ItemID,
		Action: ev.Action,
		Count:  ev.Count,
		At:     ev.At,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("record like event: %w", err)
	}
	return nil
}

func (r *Recorder) handle(ctx context.Context, body []byte) error {
	var ev LikeEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}
	if ev.ItemID == "" {
		return fmt.Errorf("%w: empty itemId", errMalformed)
	}
	return r.Record(ctx, ev)
}

// Run consumes queue until ctx is done or the delivery channel closes.
func (r *Recorder) Run(ctx context.Context, ch *amqp.Channel, queue string) error {
	if queue == "" {
		queue = DefaultQueue
	}
	deliveries, err := ch.Consume(queue, "like-recorder", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", queue, err)
	}
	r.logger.Info("like recorder started", zap.String("queue", queue))
	r.consume(ctx, deliveries)
	return nil
}

func (r *Recorder) consume(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			r.deliver(ctx, d)
		}
	}
}

func (r *Recorder) deliver(ctx context.Context, d amqp.Delivery) {
	err := r.handle(ctx, d.Body)
	switch {
	case err == nil:
		_ = d.Ack(false)
	case errors.Is(err, errMalformed):
		r.logger.Warn("dropping like event", zap.Error(err))
		_ = d.Reject(false)
	default:
		r.logger.Error("store like event", zap.Error(err))
		_ = d.Nack(false, true)
	}
}
