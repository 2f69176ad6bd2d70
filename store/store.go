// Package store persists the itemId -> like count mapping.
package store

import (
	"context"
	"errors"
)

// Counts maps an item identifier (article or project slug) to its like count.
type Counts map[string]int

// Clone returns a copy that can be mutated without touching c.
func (c Counts) Clone() Counts {
	out := make(Counts, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// LikeStore is the durable mapping plus its load/save operations.
type LikeStore interface {
	LoadAll(ctx context.Context) (Counts, error)
	SaveAll(ctx context.Context, counts Counts) error
}

// Adjuster is implemented by stores that can apply a clamped delta atomically.
// The returned value is the count after the update and is never negative.
type Adjuster interface {
	Adjust(ctx context.Context, itemID string, delta int) (int, error)
}

// Ranked is one entry of a like ranking.
type Ranked struct {
	ItemID string
	Count  int
}

// Ranker is implemented by stores that keep their own ranking index.
type Ranker interface {
	Top(ctx context.Context, n int) ([]Ranked, error)
}

var ErrNilClient = errors.New("store: nil client")
