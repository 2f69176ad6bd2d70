// Package events carries like updates to RabbitMQ and records them as history.
package events

import (
	"context"
	"time"
)

const DefaultQueue = "like.queue"

// LikeEvent is published after a like or unlike has been persisted.
type LikeEvent struct {
	ItemID string    `json:"itemId"`
	Action string    `json:"action"`
	Count  int       `json:"count"`
	At     time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev LikeEvent) error
}

// NopPublisher drops every event. Used when RabbitMQ is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, LikeEvent) error { return nil }
