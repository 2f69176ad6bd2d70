package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/events"
	"portfolio/store"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.LikeEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.LikeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

type failingStore struct {
	counts  store.Counts
	loadErr error
	saveErr error
}

func (f *failingStore) LoadAll(context.Context) (store.Counts, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.counts.Clone(), nil
}

func (f *failingStore) SaveAll(_ context.Context, c store.Counts) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.counts = c
	return nil
}

type adjusterStore struct {
	failingStore
	calls []int
}

func (a *adjusterStore) Adjust(_ context.Context, itemID string, delta int) (int, error) {
	a.calls = append(a.calls, delta)
	if a.counts == nil {
		a.counts = store.Counts{}
	}
	a.counts[itemID] = max(0, a.counts[itemID]+delta)
	return a.counts[itemID], nil
}

func newFileLikeService(t *testing.T, opts LikeOptions) (*LikeService, *store.FileStore) {
	t.Helper()
	fs := store.NewFileStore(afero.NewMemMapFs(), "", nil)
	return NewLikeService(fs, opts), fs
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in      string
		want    Action
		wantErr bool
	}{
		{in: "", wantErr: true},
		{in: "like", want: ActionLike},
		{in: "unlike", want: ActionUnlike},
		{in: "Like", wantErr: true},
		{in: "bogus", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseAction(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidAction, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestLikeService_RepeatedLikesIncrementByOne(t *testing.T) {
	svc, _ := newFileLikeService(t, LikeOptions{})
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		n, err := svc.Apply(ctx, "titanic-survival", ActionLike)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
}

func TestLikeService_UnlikeClampsAtZero(t *testing.T) {
	svc, fs := newFileLikeService(t, LikeOptions{})
	ctx := context.Background()
	require.NoError(t, fs.SaveAll(ctx, store.Counts{"a": 0}))

	n, err := svc.Apply(ctx, "a", ActionUnlike)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = svc.Apply(ctx, "never-seen", ActionUnlike)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	counts, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.Counts{"a": 0, "never-seen": 0}, counts)
}

func TestLikeService_LikeThenUnlikeRestores(t *testing.T) {
	svc, fs := newFileLikeService(t, LikeOptions{})
	ctx := context.Background()
	require.NoError(t, fs.SaveAll(ctx, store.Counts{"a": 7, "b": 2}))

	_, err := svc.Apply(ctx, "a", ActionLike)
	require.NoError(t, err)
	n, err := svc.Apply(ctx, "a", ActionUnlike)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	counts, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.Counts{"a": 7, "b": 2}, counts)
}

func TestLikeService_SaveErrorSurfaces(t *testing.T) {
	boom := errors.New("disk full")
	pub := &recordingPublisher{}
	svc := NewLikeService(&failingStore{counts: store.Counts{}, saveErr: boom}, LikeOptions{Publisher: pub})

	_, err := svc.Apply(context.Background(), "a", ActionLike)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, pub.events, "nothing is published for a failed write")
}

func TestLikeService_PublishesEvent(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	at := time.Date(2025, 11, 3, 9, 30, 0, 0, time.UTC)
	svc, _ := newFileLikeService(t, LikeOptions{Publisher: pub, Now: func() time.Time { return at }})

	n, err := svc.Apply(context.Background(), "echo-effect", ActionLike)
	require.NoError(t, err, "publish failures do not fail the request")
	assert.Equal(t, 1, n)

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.LikeEvent{ItemID: "echo-effect", Action: "like", Count: 1, At: at}, pub.events[0])
}

func TestLikeService_UsesAdjusterWhenAvailable(t *testing.T) {
	s := &adjusterStore{}
	svc := NewLikeService(s, LikeOptions{})
	ctx := context.Background()

	_, err := svc.Apply(ctx, "a", ActionLike)
	require.NoError(t, err)
	n, err := svc.Apply(ctx, "a", ActionUnlike)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	n, err = svc.Apply(ctx, "a", ActionUnlike)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	assert.Equal(t, []int{1, -1, -1}, s.calls)
}

func TestLikeService_SerializedWritesDoNotLoseUpdates(t *testing.T) {
	svc, _ := newFileLikeService(t, LikeOptions{SerializeWrites: true})
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Apply(ctx, "a", ActionLike)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	counts, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, workers, counts["a"])
}

func TestLikeService_Top(t *testing.T) {
	svc, fs := newFileLikeService(t, LikeOptions{})
	ctx := context.Background()
	require.NoError(t, fs.SaveAll(ctx, store.Counts{"a": 1, "b": 5, "c": 5, "d": 0}))

	top, err := svc.Top(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []store.Ranked{
		{ItemID: "b", Count: 5},
		{ItemID: "c", Count: 5},
		{ItemID: "a", Count: 1},
	}, top)

	all, err := svc.Top(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestLikeService_TopLoadError(t *testing.T) {
	svc := NewLikeService(&failingStore{loadErr: errors.New("conn refused")}, LikeOptions{})

	_, err := svc.Top(context.Background(), 5)
	assert.Error(t, err)
}
