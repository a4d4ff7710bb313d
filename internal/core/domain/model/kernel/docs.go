// Package kernel provides the identifier primitive shared by the pricing domain model.
//
// UUID is an immutable value object used as the order identity. It is validated on
// construction and on parse, so an order id coming from an event payload is either a
// proper UUID or a validation error.
package kernel
