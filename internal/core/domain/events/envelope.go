package events

import (
	"encoding/json"
	"time"

	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/pkg/errs"
)

// Event sources and detail types.
const (
	SourceOrderService   = "order.service"
	SourceDemandAnalysis = "demand.analysis"
	SourcePricingService = "pricing.service"

	TypeOrderPlaced  = "OrderPlaced"
	TypeHighDemand   = "HighDemandDetected"
	TypePriceChanged = "PriceChanged"
)

// Envelope wraps one event on the bus.
type Envelope struct {
	ID         string          `json:"id"`
	Source     string          `json:"source"`
	DetailType string          `json:"detail_type"`
	Time       time.Time       `json:"time"`
	Detail     json.RawMessage `json:"detail"`
}

// NewEnvelope marshals detail and stamps the envelope with a fresh id and the current time.
func NewEnvelope(source, detailType string, detail any) (Envelope, error) {
	if source == "" {
		return Envelope{}, errs.NewValueIsRequiredError("source")
	}
	if detailType == "" {
		return Envelope{}, errs.NewValueIsRequiredError("detail_type")
	}

	raw, err := json.Marshal(detail)
	if err != nil {
		return Envelope{}, errs.NewValueIsInvalidErrorWithCause("detail", err)
	}

	return Envelope{
		ID:         kernel.NewUUID().String(),
		Source:     source,
		DetailType: detailType,
		Time:       time.Now().UTC(),
		Detail:     raw,
	}, nil
}

// Key identifies the subscription an envelope is routed to.
func (e Envelope) Key() string {
	return RouteKey(e.Source, e.DetailType)
}

// RouteKey joins source and detail type into a subscription key.
func RouteKey(source, detailType string) string {
	return source + "/" + detailType
}

// Decode unmarshals the envelope detail into v.
// Malformed JSON is reported as a validation error so stages answer 400.
func (e Envelope) Decode(v any) error {
	if len(e.Detail) == 0 {
		return errs.NewValueIsRequiredError("detail")
	}
	if err := json.Unmarshal(e.Detail, v); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("detail", err)
	}
	return nil
}
