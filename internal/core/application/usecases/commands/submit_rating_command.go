package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rating"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrSubmitRatingCommandIsNotConstructed = errors.New(
	"SubmitRatingCommand must be created via NewSubmitRatingCommand constructor",
)

// SubmitRatingCommand carries a customer's scores for one delivered order.
type SubmitRatingCommand struct { //nolint:recvcheck //using for validation
	ratingID      kernel.UUID
	actor         kernel.Actor
	orderID       kernel.UUID
	foodScore     int
	serviceScore  int
	deliveryScore int
	comment       string

	guard guard.ConstructorGuard
}

func NewSubmitRatingCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	food, service, delivery int,
	comment string,
) (SubmitRatingCommand, error) {
	if err := actor.Validate(); err != nil {
		return SubmitRatingCommand{}, err
	}
	if !actor.Is(kernel.RoleCustomer) {
		return SubmitRatingCommand{}, errs.NewValueIsInvalidErrorWithCause("actor", fmt.Errorf("%s cannot rate orders", actor.Role))
	}

	var errList []error
	if err := orderID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("orderId", err))
	}
	scores := []struct {
		name  string
		value int
	}{
		{"foodScore", food},
		{"serviceScore", service},
		{"deliveryScore", delivery},
	}
	for _, score := range scores {
		if score.value < rating.MinScore || score.value > rating.MaxScore {
			errList = append(errList, errs.NewValueIsOutOfRangeError(score.name, score.value, rating.MinScore, rating.MaxScore))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return SubmitRatingCommand{}, err
	}

	return SubmitRatingCommand{
		ratingID:      kernel.NewUUID(),
		actor:         actor,
		orderID:       orderID,
		foodScore:     food,
		serviceScore:  service,
		deliveryScore: delivery,
		comment:       comment,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitRatingCommand) Validate() error {
	return c.guard.Validate(ErrSubmitRatingCommandIsNotConstructed)
}

func (c SubmitRatingCommand) RatingID() kernel.UUID { return c.ratingID }
func (c SubmitRatingCommand) Actor() kernel.Actor   { return c.actor }
func (c SubmitRatingCommand) OrderID() kernel.UUID  { return c.orderID }
func (c SubmitRatingCommand) FoodScore() int        { return c.foodScore }
func (c SubmitRatingCommand) ServiceScore() int     { return c.serviceScore }
func (c SubmitRatingCommand) DeliveryScore() int    { return c.deliveryScore }
func (c SubmitRatingCommand) Comment() string       { return c.comment }
