package tracking_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/core/application/tracking"
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = time.Second
	tick    = 5 * time.Millisecond
)

type fakeSource struct {
	locations chan kernel.Location
	errors    chan error

	mu      sync.Mutex
	current func(ctx context.Context) (kernel.Location, error)
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		locations: make(chan kernel.Location, 8),
		errors:    make(chan error, 1),
		current: func(ctx context.Context) (kernel.Location, error) {
			<-ctx.Done()
			return kernel.Location{}, ctx.Err()
		},
	}
}

func (s *fakeSource) Watch(context.Context) (<-chan kernel.Location, <-chan error) {
	return s.locations, s.errors
}

func (s *fakeSource) Current(ctx context.Context) (kernel.Location, error) {
	s.mu.Lock()
	fn := s.current
	s.mu.Unlock()
	return fn(ctx)
}

func (s *fakeSource) setCurrent(fn func(ctx context.Context) (kernel.Location, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = fn
}

type recordingPusher struct {
	mu       sync.Mutex
	pushed   []kernel.Location
	err      error
	failures int
}

func (p *recordingPusher) PushLocation(_ context.Context, _ kernel.UUID, location kernel.Location) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		p.failures++
		return p.err
	}
	p.pushed = append(p.pushed, location)
	return nil
}

func (p *recordingPusher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pushed)
}

func (p *recordingPusher) failed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failures
}

func (p *recordingPusher) setErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func location(t *testing.T, lat, lon float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	return loc
}

func newTracker(source *fakeSource, pusher *recordingPusher, opts ...tracking.Option) *tracking.Tracker {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	defaults := []tracking.Option{tracking.WithInterval(time.Hour)}
	return tracking.NewTracker(kernel.NewUUID(), source, pusher, logger, append(defaults, opts...)...)
}

func TestTracker_PushesWatchUpdates(t *testing.T) {
	source := newFakeSource()
	pusher := &recordingPusher{}
	tracker := newTracker(source, pusher)

	_, ok := tracker.CurrentLocation()
	assert.False(t, ok)

	tracker.Start(context.Background())
	defer tracker.Stop()

	source.locations <- location(t, 55.75, 37.61)
	source.locations <- location(t, 55.76, 37.62)

	require.Eventually(t, func() bool { return pusher.count() == 2 }, waitFor, tick)

	current, ok := tracker.CurrentLocation()
	require.True(t, ok)
	assert.InDelta(t, 55.76, current.Lat(), 1e-9)
	assert.InDelta(t, 37.62, current.Lon(), 1e-9)
}

func TestTracker_PushesIntervalReads(t *testing.T) {
	source := newFakeSource()
	fix := location(t, 40.41, -3.70)
	source.setCurrent(func(context.Context) (kernel.Location, error) { return fix, nil })
	pusher := &recordingPusher{}
	tracker := newTracker(source, pusher, tracking.WithInterval(10*time.Millisecond))

	tracker.Start(context.Background())
	defer tracker.Stop()

	require.Eventually(t, func() bool { return pusher.count() >= 3 }, waitFor, tick)
}

func TestTracker_NoPushAfterStop(t *testing.T) {
	source := newFakeSource()
	pusher := &recordingPusher{}
	tracker := newTracker(source, pusher)

	tracker.Start(context.Background())
	source.locations <- location(t, 1, 1)
	require.Eventually(t, func() bool { return pusher.count() == 1 }, waitFor, tick)

	tracker.Stop()
	assert.False(t, tracker.Running())

	source.locations <- location(t, 2, 2)
	assert.Never(t, func() bool { return pusher.count() > 1 }, 50*time.Millisecond, tick)
}

func TestTracker_StartTwiceKeepsSingleRun(t *testing.T) {
	source := newFakeSource()
	pusher := &recordingPusher{}
	tracker := newTracker(source, pusher)

	tracker.Start(context.Background())
	tracker.Start(context.Background())
	assert.True(t, tracker.Running())

	tracker.Stop()
	assert.False(t, tracker.Running())

	// stopping an idle tracker is a no-op
	tracker.Stop()
}

func TestTracker_GeolocationFailureStopsLoop(t *testing.T) {
	tests := []struct {
		name   string
		fail   func(source *fakeSource)
		reason errs.GeolocationReason
	}{
		{
			name: "watch permission denied",
			fail: func(source *fakeSource) {
				source.errors <- errs.NewGeolocationError(errs.GeolocationPermissionDenied, nil)
			},
			reason: errs.GeolocationPermissionDenied,
		},
		{
			name:   "interval read timeout",
			fail:   func(*fakeSource) {},
			reason: errs.GeolocationTimeout,
		},
		{
			name: "interval read unavailable",
			fail: func(source *fakeSource) {
				source.setCurrent(func(context.Context) (kernel.Location, error) {
					return kernel.Location{}, errors.New("no satellites")
				})
			},
			reason: errs.GeolocationPositionUnavailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := newFakeSource()
			pusher := &recordingPusher{}
			reported := make(chan *errs.GeolocationError, 1)

			tracker := newTracker(source, pusher,
				tracking.WithInterval(10*time.Millisecond),
				tracking.WithReadTimeout(10*time.Millisecond),
				tracking.WithErrorHandler(func(err *errs.GeolocationError) { reported <- err }),
			)
			tt.fail(source)
			tracker.Start(context.Background())

			select {
			case err := <-reported:
				assert.Equal(t, tt.reason, err.Reason)
				require.ErrorIs(t, err, errs.ErrGeolocation)
			case <-time.After(waitFor):
				t.Fatal("geolocation failure was not reported")
			}
			assert.False(t, tracker.Running())
		})
	}
}

func TestTracker_ErrorHandlerMayStopAndRestart(t *testing.T) {
	source := newFakeSource()
	pusher := &recordingPusher{}
	handled := make(chan struct{})

	var tracker *tracking.Tracker
	tracker = newTracker(source, pusher, tracking.WithErrorHandler(func(*errs.GeolocationError) {
		tracker.Stop()
		close(handled)
	}))

	tracker.Start(context.Background())
	source.errors <- errs.NewGeolocationError(errs.GeolocationPositionUnavailable, nil)

	select {
	case <-handled:
	case <-time.After(waitFor):
		t.Fatal("error handler did not return")
	}

	source.errors = make(chan error, 1)
	tracker.Start(context.Background())
	defer tracker.Stop()
	assert.True(t, tracker.Running())
}

func TestTracker_PushFailureKeepsTracking(t *testing.T) {
	source := newFakeSource()
	pusher := &recordingPusher{}
	pusher.setErr(errs.NewRemoteFailureError("push location", errors.New("503")))
	tracker := newTracker(source, pusher)

	tracker.Start(context.Background())
	defer tracker.Stop()

	source.locations <- location(t, 1, 1)
	require.Eventually(t, func() bool { return pusher.failed() == 1 }, waitFor, tick)
	assert.True(t, tracker.Running())

	current, ok := tracker.CurrentLocation()
	require.True(t, ok)
	assert.InDelta(t, 1.0, current.Lat(), 1e-9)

	pusher.setErr(nil)
	source.locations <- location(t, 2, 2)
	require.Eventually(t, func() bool { return pusher.count() == 1 }, waitFor, tick)
}

func TestTracker_OnStatusChange(t *testing.T) {
	source := newFakeSource()
	tracker := newTracker(source, &recordingPusher{})
	ctx := context.Background()

	tracker.OnStatusChange(ctx, courier.Available)
	assert.True(t, tracker.Running())

	tracker.OnStatusChange(ctx, courier.OnDelivery)
	assert.True(t, tracker.Running())

	tracker.OnStatusChange(ctx, courier.OffDuty)
	assert.False(t, tracker.Running())
}
