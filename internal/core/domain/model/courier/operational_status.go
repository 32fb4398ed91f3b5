package courier

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

type OperationalStatus int

const (
	StatusUnknown OperationalStatus = iota
	Available
	OnDelivery
	OffDuty
)

func getOperationalStatusStrings() map[OperationalStatus]string {
	return map[OperationalStatus]string{
		StatusUnknown: "Unknown",
		Available:     "Available",
		OnDelivery:    "OnDelivery",
		OffDuty:       "OffDuty",
	}
}

func ParseOperationalStatus(s string) (OperationalStatus, error) {
	for status, name := range getOperationalStatusStrings() {
		if status != StatusUnknown && strings.EqualFold(name, strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("operationalStatus", fmt.Errorf("%q is not a valid status", s))
}

func (s OperationalStatus) Validate() error {
	if s != Available && s != OnDelivery && s != OffDuty {
		return errs.NewValueIsInvalidErrorWithCause("operationalStatus", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s OperationalStatus) String() string {
	if str, ok := getOperationalStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTracked reports whether the device should share its location in this status.
func (s OperationalStatus) IsTracked() bool {
	return s == Available || s == OnDelivery
}
