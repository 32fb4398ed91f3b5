package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	Pending ──> Confirmed ──> InPreparation ──> OutForDelivery ──> Delivered
//	   │            │               │                  │
//	   └────────────┴───────────────┴──────────────────┴──────> Cancelled
//
// Which role may perform which step is defined by the transition table in transitions.go.
type Status int

const (
	// Unknown (0) catches uninitialized values.
	Unknown Status = iota
	Pending
	Confirmed
	InPreparation
	OutForDelivery
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "Pending",
		Confirmed:      "Confirmed",
		InPreparation:  "InPreparation",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "Pending",
		Confirmed:      "Confirmed",
		InPreparation:  "InPreparation",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Confirmed, InPreparation, OutForDelivery, Delivered, Cancelled}
}

// ParseStatus accepts the String form case-insensitively.
func ParseStatus(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and any out-of-range value, e.g. one read from storage.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

func statusNames(statuses []Status) []string {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return names
}
