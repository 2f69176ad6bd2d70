package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"portfolio/events"
	"portfolio/store"
)

type Action string

const (
	ActionLike   Action = "like"
	ActionUnlike Action = "unlike"
)

const DefaultTop = 10

var ErrInvalidAction = errors.New("invalid action")

// ParseAction maps an explicit request value to an Action. Callers treat a
// missing action as ActionLike; an empty string is rejected.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionLike:
		return ActionLike, nil
	case ActionUnlike:
		return ActionUnlike, nil
	}
	return "", ErrInvalidAction
}

func (a Action) delta() int {
	if a == ActionUnlike {
		return -1
	}
	return 1
}

type LikeOptions struct {
	// SerializeWrites guards the load-modify-save cycle with a mutex.
	SerializeWrites bool
	Publisher       events.Publisher
	Logger          *zap.Logger
	Now             func() time.Time
}

// LikeService applies like/unlike actions on top of a LikeStore.
type LikeService struct {
	store     store.LikeStore
	serialize bool
	mu        sync.Mutex
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewLikeService(s store.LikeStore, opts LikeOptions) *LikeService {
	svc := &LikeService{
		store:     s,
		serialize: opts.SerializeWrites,
		publisher: opts.Publisher,
		logger:    opts.Logger,
		now:       opts.Now,
	}
	if svc.publisher == nil {
		svc.publisher = events.NopPublisher{}
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

// Snapshot returns every known count.
func (s *LikeService) Snapshot(ctx context.Context) (store.Counts, error) {
	return s.store.LoadAll(ctx)
}

// Apply records one like or unlike for itemID and returns the new count.
// Counts never go below zero.
func (s *LikeService) Apply(ctx context.Context, itemID string, action Action) (int, error) {
	var (
		count int
		err   error
	)
	if adj, ok := s.store.(store.Adjuster); ok {
		count, err = adj.Adjust(ctx, itemID, action.delta())
	} else {
		count, err = s.readModifyWrite(ctx, itemID, action)
	}
	if err != nil {
		return 0, err
	}

	ev := events.LikeEvent{ItemID: itemID, Action: string(action), Count: count, At: s.now().UTC()}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn("publish like event", zap.String("item_id", itemID), zap.Error(err))
	}
	return count, nil
}

func (s *LikeService) readModifyWrite(ctx context.Context, itemID string, action Action) (int, error) {
	if s.serialize {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	counts, err := s.store.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	if counts == nil {
		counts = store.Counts{}
	}
	counts[itemID] = max(0, counts[itemID]+action.delta())
	if err := s.store.SaveAll(ctx, counts); err != nil {
		return 0, err
	}
	return counts[itemID], nil
}

// Top returns the n most liked items. n <= 0 means DefaultTop.
func (s *LikeService) Top(ctx context.Context, n int) ([]store.Ranked, error) {
	if n <= 0 {
		n = DefaultTop
	}
	if r, ok := s.store.(store.Ranker); ok {
		return r.Top(ctx, n)
	}

	counts, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	ranked := make([]store.Ranked, 0, len(counts))
	for id, c := range counts {
		ranked = append(ranked, store.Ranked{ItemID: id, Count: c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].ItemID < ranked[j].ItemID
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}
