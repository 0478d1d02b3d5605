package domain

// PriceBar is a single OHLC bar. Bars are ordered ascending by timestamp
// and are never mutated after construction.
type PriceBar struct {
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Timestamp int64   `json:"timestamp"`
}

// Bullish reports whether the bar closed above its open.
func (b PriceBar) Bullish() bool {
	return b.Close > b.Open
}

// Bearish reports whether the bar closed below its open.
func (b PriceBar) Bearish() bool {
	return b.Close < b.Open
}
