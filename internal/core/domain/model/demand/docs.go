// Package demand provides the per-product demand aggregate.
//
// A Record holds the cumulative ordered quantity of one product. Demand only grows:
// the pipeline accumulates and never decays or deletes it. A Contribution remembers
// that a given order has already been counted, which makes redelivered OrderPlaced
// events harmless.
package demand
