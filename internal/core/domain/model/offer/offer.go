// Package offer holds promotional offers and their expiry rule.
package offer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrOfferIsNotConstructed = errors.New("Offer must be created via NewOffer constructor")

// Offer is a time-boxed promotion. It is deactivated by the expiration
// sweep once its end date has passed.
type Offer struct {
	id       kernel.UUID
	title    string
	startsAt time.Time
	endsAt   time.Time
	active   bool
	guard    guard.ConstructorGuard
}

func NewOffer(id kernel.UUID, title string, startsAt, endsAt time.Time, active bool) (*Offer, error) {
	o := &Offer{
		active: active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setTitle(title),
		o.setPeriod(startsAt, endsAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Offer) Validate() error {
	if o == nil {
		return ErrOfferIsNotConstructed
	}
	return o.guard.Validate(ErrOfferIsNotConstructed)
}

func (o *Offer) ID() kernel.UUID     { return o.id }
func (o *Offer) Title() string       { return o.title }
func (o *Offer) StartsAt() time.Time { return o.startsAt }
func (o *Offer) EndsAt() time.Time   { return o.endsAt }
func (o *Offer) IsActive() bool      { return o.active }

// IsExpired reports whether the offer ended strictly before now.
func (o *Offer) IsExpired(now time.Time) bool {
	return o.endsAt.Before(now)
}

// Deactivate switches an expired offer off. It returns false when nothing changed.
func (o *Offer) Deactivate(now time.Time) bool {
	if !o.active || !o.IsExpired(now) {
		return false
	}
	o.active = false
	return true
}

func (o *Offer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Offer) setTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	o.title = title
	return nil
}

func (o *Offer) setPeriod(startsAt, endsAt time.Time) error {
	if endsAt.Before(startsAt) {
		return errs.NewValueIsInvalidErrorWithCause("endsAt", fmt.Errorf("%s is before %s", endsAt, startsAt))
	}
	o.startsAt = startsAt.UTC()
	o.endsAt = endsAt.UTC()
	return nil
}
