package order

import (
	"fulfillment/internal/core/domain/model/kernel"
)

type CourierRefKind int

const (
	CourierUnassigned CourierRefKind = iota
	CourierReference
	CourierPopulated
)

// CourierSummary is the courier data shown next to an order once resolved.
type CourierSummary struct {
	ID                kernel.UUID
	UserID            kernel.UUID
	OperationalStatus string
	Location          *kernel.Location
	AverageRating     float64
}

// CourierRef is the courier slot of an order. Aggregates loaded from storage
// carry a Reference; the listing query upgrades it to Populated when the
// courier exists.
type CourierRef struct {
	kind    CourierRefKind
	id      kernel.UUID
	summary CourierSummary
}

func UnassignedCourier() CourierRef {
	return CourierRef{kind: CourierUnassigned}
}

func CourierReferenceTo(id kernel.UUID) CourierRef {
	return CourierRef{kind: CourierReference, id: id}
}

func PopulatedCourier(summary CourierSummary) CourierRef {
	return CourierRef{kind: CourierPopulated, id: summary.ID, summary: summary}
}

func (r CourierRef) Kind() CourierRefKind {
	return r.kind
}

func (r CourierRef) IsAssigned() bool {
	return r.kind != CourierUnassigned
}

// ID returns the courier id for Reference and Populated refs.
func (r CourierRef) ID() (kernel.UUID, bool) {
	if r.kind == CourierUnassigned {
		return kernel.UUID{}, false
	}
	return r.id, true
}

func (r CourierRef) Summary() (CourierSummary, bool) {
	if r.kind != CourierPopulated {
		return CourierSummary{}, false
	}
	return r.summary, true
}
