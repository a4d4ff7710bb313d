// Package events defines the envelope carried by the event bus and the three
// payloads exchanged between pipeline stages:
//
//	order.service    / OrderPlaced        {order_id, product_id, quantity, timestamp}
//	demand.analysis  / HighDemandDetected {product_id, demand}
//	pricing.service  / PriceChanged       {product_id, new_price}
//
// Stages only look at Source, DetailType and Detail. ID and Time are transport
// metadata filled in by publishers.
package events
