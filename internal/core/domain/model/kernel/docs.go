// Package kernel holds the shared value objects of the fulfillment domain.
//
// The package includes:
//   - UUID: identifier value object used by every aggregate
//   - Location: a validated latitude/longitude pair reported by courier devices
//   - Role and Actor: who is performing an operation
//   - ItemKind and ItemRef: a reference to a catalog product or combo
//
// All types are immutable values. Their zero values are invalid where a
// constructor exists, and Validate reports the misuse.
package kernel
