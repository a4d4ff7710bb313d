// Package pricing provides the per-product pricing aggregate.
//
// A Record is created on the first high-demand signal for a product with default
// pricing parameters. From then on only the current price changes:
//
//	current_price = base_price + demand * price_factor
//
// Amounts use github.com/shopspring/decimal so the formula is exact.
package pricing
