// Package order provides the Order aggregate of the pricing pipeline.
//
// An Order is written once by order intake and is read-only for every other stage:
// the demand accumulator only looks it up to confirm that an OrderPlaced event refers
// to a persisted order.
//
// Key business rules:
//   - Orders have a valid UUID, a non-blank product id and a positive quantity
//   - The placement timestamp travels as unix milliseconds
//   - Orders are immutable and never deleted by the pipeline
package order
