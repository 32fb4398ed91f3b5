// Package services holds domain logic that spans more than one aggregate.
//
// The package includes:
//   - CourierRatingCalculator: derives a courier's average rating from the
//     ratings of the orders in its delivery history
//   - ZeroPricingPolicy: the default checkout pricing (no discount, free shipping)
package services
