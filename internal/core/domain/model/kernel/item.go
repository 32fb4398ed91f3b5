package kernel

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// ItemKind distinguishes single catalog products from combos.
type ItemKind int

const (
	ItemKindUnknown ItemKind = iota
	ItemKindProduct
	ItemKindCombo
)

func (k ItemKind) String() string {
	switch k {
	case ItemKindProduct:
		return "product"
	case ItemKindCombo:
		return "combo"
	default:
		return "unknown"
	}
}

func (k ItemKind) Validate() error {
	if k != ItemKindProduct && k != ItemKindCombo {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("unsupported item kind %d", k))
	}
	return nil
}

func ParseItemKind(s string) (ItemKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "product":
		return ItemKindProduct, nil
	case "combo":
		return ItemKindCombo, nil
	default:
		return ItemKindUnknown, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("unknown item kind %q", s))
	}
}

// ItemRef points at a catalog entry. Two refs are the same item when both fields match.
type ItemRef struct {
	Kind        ItemKind
	ReferenceID UUID
}

func NewItemRef(kind ItemKind, referenceID UUID) (ItemRef, error) {
	ref := ItemRef{Kind: kind, ReferenceID: referenceID}
	if err := ref.Validate(); err != nil {
		return ItemRef{}, err
	}
	return ref, nil
}

func (r ItemRef) Validate() error {
	if err := r.Kind.Validate(); err != nil {
		return err
	}
	if err := r.ReferenceID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("referenceId", err)
	}
	return nil
}

func (r ItemRef) String() string {
	return r.Kind.String() + ":" + r.ReferenceID.String()
}
