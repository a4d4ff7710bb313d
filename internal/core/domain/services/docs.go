// Package services provides domain services that hold pricing rules which do not
// belong to a single aggregate.
//
// The package includes:
//   - PricingEngine: the high-demand threshold, the default pricing parameters and
//     the price formula applied by the recalculation stage
package services
