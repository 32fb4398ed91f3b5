// Package cartsession owns the live cart of one customer: it serializes
// mutations, persists every change through a ports.CartStore and notifies
// subscribers with a fresh snapshot.
//
// The in-memory cart is authoritative. A corrupt stored cart is replaced by
// an empty one and store write failures are only logged.
package cartsession

import (
	"context"
	"log/slog"
	"sync"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Listener receives the cart state after every change.
type Listener func(cart.Snapshot)

type Session struct {
	mu        sync.Mutex
	cart      *cart.Cart
	store     ports.CartStore
	logger    *slog.Logger
	listeners map[int]Listener
	nextID    int
}

// Open loads the customer's stored cart. Load failures of the store itself are
// returned; undecodable data is discarded with a warning.
func Open(ctx context.Context, customerID kernel.UUID, store ports.CartStore, logger *slog.Logger) (*Session, error) {
	empty, err := cart.New(customerID)
	if err != nil {
		return nil, err
	}

	s := &Session{
		cart:      empty,
		store:     store,
		logger:    logger.With("component", "cart_session", "customer_id", customerID.String()),
		listeners: make(map[int]Listener),
	}

	data, err := store.Load(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return s, nil
	}

	restored, err := decode(customerID, data)
	if err != nil {
		s.logger.WarnContext(ctx, "discarding corrupt stored cart", "error", err)
		return s, nil
	}
	s.cart = restored
	return s, nil
}

func (s *Session) CustomerID() kernel.UUID {
	return s.cart.CustomerID()
}

func (s *Session) AddItem(ctx context.Context, ref kernel.ItemRef, name string, unitPrice decimal.Decimal, quantity int) error {
	return s.mutate(ctx, func(c *cart.Cart) error {
		return c.AddItem(ref, name, unitPrice, quantity)
	})
}

// UpdateQuantity removes the item when quantity is zero or less.
func (s *Session) UpdateQuantity(ctx context.Context, ref kernel.ItemRef, quantity int) error {
	return s.mutate(ctx, func(c *cart.Cart) error {
		return c.UpdateQuantity(ref, quantity)
	})
}

func (s *Session) RemoveItem(ctx context.Context, ref kernel.ItemRef) {
	_ = s.mutate(ctx, func(c *cart.Cart) error {
		c.RemoveItem(ref)
		return nil
	})
}

func (s *Session) Clear(ctx context.Context) {
	_ = s.mutate(ctx, func(c *cart.Cart) error {
		c.Clear()
		return nil
	})
}

func (s *Session) Items() []cart.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items()
}

func (s *Session) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

func (s *Session) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount()
}

func (s *Session) Snapshot() cart.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Snapshot()
}

// Subscribe registers fn and returns a function that removes it.
func (s *Session) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Session) subscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners) > 0
}

// Checkout hands a snapshot to place and clears the cart only when place
// succeeds. The session stays locked while place runs, so the cart cannot
// change under an in-flight checkout.
func (s *Session) Checkout(ctx context.Context, place func(context.Context, cart.Snapshot) error) error {
	s.mu.Lock()

	if s.cart.IsEmpty() {
		s.mu.Unlock()
		return errs.NewValueIsRequiredError("cart")
	}

	if err := place(ctx, s.cart.Snapshot()); err != nil {
		s.mu.Unlock()
		return err
	}

	s.cart.Clear()
	s.persist(ctx)
	snapshot, listeners := s.cart.Snapshot(), s.copyListeners()
	s.mu.Unlock()

	notify(listeners, snapshot)
	return nil
}

func (s *Session) mutate(ctx context.Context, change func(*cart.Cart) error) error {
	s.mu.Lock()

	if err := change(s.cart); err != nil {
		s.mu.Unlock()
		return err
	}

	s.persist(ctx)
	snapshot, listeners := s.cart.Snapshot(), s.copyListeners()
	s.mu.Unlock()

	notify(listeners, snapshot)
	return nil
}

// persist must be called with mu held. An empty cart deletes the stored entry.
func (s *Session) persist(ctx context.Context) {
	customerID := s.cart.CustomerID()

	if s.cart.IsEmpty() {
		if err := s.store.Delete(ctx, customerID); err != nil {
			s.logger.ErrorContext(ctx, "failed to delete stored cart", "error", err)
		}
		return
	}

	data, err := encode(s.cart.Items())
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to encode cart", "error", err)
		return
	}
	if err := s.store.Save(ctx, customerID, data); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist cart", "error", err)
	}
}

func (s *Session) copyListeners() []Listener {
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	return listeners
}

func notify(listeners []Listener, snapshot cart.Snapshot) {
	for _, fn := range listeners {
		fn(snapshot)
	}
}
