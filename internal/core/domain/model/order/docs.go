// Package order holds the Order aggregate and the role-gated status machine.
//
// The package includes:
//   - Order: the aggregate root created at checkout; lines and pricing are fixed
//     at creation, only status, courier and estimated delivery time change later
//   - Status and the transition table: which role may move an order from one
//     status to another
//   - CourierRef: the tagged courier reference (unassigned, id only, or populated)
//   - Scope and Filter: the visibility rules used to list orders for a role
//
// Key business rules:
//   - total = subtotal - discount + shipping and is never negative
//   - Delivered and Cancelled are terminal
//   - OutForDelivery requires an assigned courier, whoever asks for it
//   - A rejected transition leaves the order untouched
package order
