// Package tracking runs the courier-side location loop. A continuous watch
// subscription and a fixed-interval read both feed a single writer goroutine
// that pushes positions to the fulfillment service.
package tracking

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const (
	DefaultInterval    = 10 * time.Second
	DefaultReadTimeout = 5 * time.Second
)

// ErrorHandler is called once per failed run, after the run has fully stopped.
type ErrorHandler func(*errs.GeolocationError)

type Option func(*Tracker)

func WithInterval(d time.Duration) Option {
	return func(t *Tracker) { t.interval = d }
}

func WithReadTimeout(d time.Duration) Option {
	return func(t *Tracker) { t.readTimeout = d }
}

func WithErrorHandler(fn ErrorHandler) Option {
	return func(t *Tracker) { t.onError = fn }
}

type Tracker struct {
	courierID   kernel.UUID
	source      ports.LocationSource
	pusher      ports.LocationPusher
	logger      *slog.Logger
	interval    time.Duration
	readTimeout time.Duration
	onError     ErrorHandler

	mu      sync.Mutex
	current *run
	last    *kernel.Location
}

type run struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func NewTracker(
	courierID kernel.UUID,
	source ports.LocationSource,
	pusher ports.LocationPusher,
	logger *slog.Logger,
	opts ...Option,
) *Tracker {
	t := &Tracker{
		courierID:   courierID,
		source:      source,
		pusher:      pusher,
		logger:      logger.With("component", "location_tracker", "courier_id", courierID.String()),
		interval:    DefaultInterval,
		readTimeout: DefaultReadTimeout,
		onError:     func(*errs.GeolocationError) {},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins tracking. It is a no-op while a run is active.
func (t *Tracker) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current != nil && !t.current.finished() {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	r := &run{cancel: cancel, done: make(chan struct{})}
	t.current = r

	updates := make(chan kernel.Location)
	failures := make(chan error, 2)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		t.watch(runCtx, updates, failures)
	}()
	go func() {
		defer wg.Done()
		t.poll(runCtx, updates, failures)
	}()

	var failure *errs.GeolocationError
	go func() {
		defer wg.Done()
		failure = t.write(runCtx, cancel, updates, failures)
	}()

	go func() {
		wg.Wait()
		cancel()
		close(r.done)
		if failure != nil {
			t.logger.WarnContext(ctx, "location tracking stopped", "reason", failure.Reason.String(), "error", failure)
			t.onError(failure)
		}
	}()

	t.logger.InfoContext(ctx, "location tracking started", "interval", t.interval.String())
}

// Stop cancels the active run and waits until no further push can happen.
func (t *Tracker) Stop() {
	t.mu.Lock()
	r := t.current
	t.current = nil
	t.mu.Unlock()

	if r == nil {
		return
	}
	r.cancel()
	<-r.done
	t.logger.Info("location tracking stopped")
}

// OnStatusChange starts tracking for Available and OnDelivery and stops it otherwise.
func (t *Tracker) OnStatusChange(ctx context.Context, status courier.OperationalStatus) {
	if status.IsTracked() {
		t.Start(ctx)
		return
	}
	t.Stop()
}

func (t *Tracker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current != nil && !t.current.finished()
}

// CurrentLocation is the last position read from the source, whether or not
// pushing it succeeded.
func (t *Tracker) CurrentLocation() (kernel.Location, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.last == nil {
		return kernel.Location{}, false
	}
	return *t.last, true
}

func (t *Tracker) watch(ctx context.Context, updates chan<- kernel.Location, failures chan<- error) {
	locations, watchErrs := t.source.Watch(ctx)
	for locations != nil || watchErrs != nil {
		select {
		case <-ctx.Done():
			return
		case loc, ok := <-locations:
			if !ok {
				locations = nil
				continue
			}
			select {
			case updates <- loc:
			case <-ctx.Done():
				return
			}
		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			report(ctx, failures, err)
			return
		}
	}
}

func (t *Tracker) poll(ctx context.Context, updates chan<- kernel.Location, failures chan<- error) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			readCtx, cancel := context.WithTimeout(ctx, t.readTimeout)
			loc, err := t.source.Current(readCtx)
			cancel()

			if err != nil {
				if ctx.Err() != nil {
					return
				}
				report(ctx, failures, err)
				return
			}

			select {
			case updates <- loc:
			case <-ctx.Done():
				return
			}
		}
	}
}

// write is the only goroutine that talks to the pusher. It returns the
// geolocation failure that ended the run, if any.
func (t *Tracker) write(
	ctx context.Context,
	stop context.CancelFunc,
	updates <-chan kernel.Location,
	failures <-chan error,
) *errs.GeolocationError {
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-failures:
			stop()
			return toGeolocationError(err)
		case loc := <-updates:
			t.mu.Lock()
			t.last = &loc
			t.mu.Unlock()

			if err := t.pusher.PushLocation(ctx, t.courierID, loc); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				t.logger.ErrorContext(ctx, "failed to push location", "error", err)
			}
		}
	}
}

func (r *run) finished() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

func report(ctx context.Context, failures chan<- error, err error) {
	select {
	case failures <- err:
	case <-ctx.Done():
	}
}

func toGeolocationError(err error) *errs.GeolocationError {
	var geoErr *errs.GeolocationError
	switch {
	case errors.As(err, &geoErr):
		return geoErr
	case errors.Is(err, context.DeadlineExceeded):
		return errs.NewGeolocationError(errs.GeolocationTimeout, err)
	default:
		return errs.NewGeolocationError(errs.GeolocationPositionUnavailable, err)
	}
}
