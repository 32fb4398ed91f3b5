// Package courier provides the Courier aggregate of the fulfillment domain.
//
// The package includes:
//   - Courier: the aggregate root holding operational status, last known
//     location, delivery history and the derived average rating
//   - DeliveryRecord: an immutable entry appended once per delivered order
//   - OperationalStatus: Available, OnDelivery or OffDuty
//
// Key business rules:
//   - New couriers start OffDuty
//   - Operational status changes are free; only Available and OnDelivery
//     couriers are tracked and may receive assignments
//   - A delivery record is appended at most once per order
//   - The average rating is derived from customer ratings and never set directly
package courier
