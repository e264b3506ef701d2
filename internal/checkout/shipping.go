package checkout

type ShippingRule struct {
	FreeThreshold int64
	Fee           int64
}

// NewShippingRule fills zero or negative values with the defaults.
func NewShippingRule(threshold, fee int64) ShippingRule {
	if threshold <= 0 {
		threshold = DefaultFreeShippingThreshold
	}
	if fee <= 0 {
		fee = DefaultShippingFee
	}
	return ShippingRule{FreeThreshold: threshold, Fee: fee}
}

type Summary struct {
	Subtotal              int64 `json:"subtotal"`
	Shipping              int64 `json:"shipping"`
	Total                 int64 `json:"total"`
	FreeShipping          bool  `json:"free_shipping"`
	FreeShippingRemaining int64 `json:"free_shipping_remaining"`
}

func (r ShippingRule) Cost(subtotal int64) int64 {
	if subtotal >= r.FreeThreshold {
		return 0
	}
	return r.Fee
}

func (r ShippingRule) Summarize(subtotal int64) Summary {
	cost := r.Cost(subtotal)
	s := Summary{
		Subtotal:     subtotal,
		Shipping:     cost,
		Total:        subtotal + cost,
		FreeShipping: cost == 0,
	}
	if !s.FreeShipping {
		s.FreeShippingRemaining = r.FreeThreshold - subtotal
	}
	return s
}

// Shipping is the cost under the default rule: free from 5000, otherwise 100.
func Shipping(total int64) int64 {
	return NewShippingRule(0, 0).Cost(total)
}
