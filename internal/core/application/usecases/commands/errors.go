package commands

import (
	"errors"
)

var (
	ErrRatingAlreadyExists  = errors.New("order already has a rating")
	ErrOrderNotDelivered    = errors.New("only delivered orders can be rated")
	ErrCourierOffDuty       = errors.New("courier is off duty")
	ErrCourierAlreadyExists = errors.New("a courier is already registered for this user")
	ErrDeliveryNotRecorded  = errors.New("couriers complete an order by recording its delivery")
)
