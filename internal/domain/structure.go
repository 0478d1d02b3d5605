package domain

type Trend string

const (
	TrendBullish   Trend = "BULLISH"
	TrendBearish   Trend = "BEARISH"
	TrendRanging   Trend = "RANGING"
	TrendUndefined Trend = "UNDEFINED"
)

// PricePosition places the current price within the recent high-low range.
type PricePosition string

const (
	PositionPremium     PricePosition = "PREMIUM"
	PositionDiscount    PricePosition = "DISCOUNT"
	PositionEquilibrium PricePosition = "EQUILIBRIUM"
	PositionNeutral     PricePosition = "NEUTRAL"
)

type SwingKind string

const (
	SwingHigh SwingKind = "HIGH"
	SwingLow  SwingKind = "LOW"
)

// SwingPoint is a local price extremum relative to a ±2-bar neighborhood.
type SwingPoint struct {
	Price float64   `json:"price"`
	Index int       `json:"index"`
	Kind  SwingKind `json:"kind"`
}

type OrderBlockKind string

const (
	BullishOB OrderBlockKind = "BULLISH_OB"
	BearishOB OrderBlockKind = "BEARISH_OB"
)

// OrderBlock is the range of a bar immediately preceding a strong
// directional move, treated as a probable reaction zone.
type OrderBlock struct {
	Kind      OrderBlockKind `json:"kind"`
	High      float64        `json:"high"`
	Low       float64        `json:"low"`
	EntryZone float64        `json:"entry_zone"`
}

// MarketStructure is the full structure report for one analysis call.
// It is created once per call and never mutated afterwards.
type MarketStructure struct {
	Trend         Trend         `json:"trend"`
	ATR           float64       `json:"atr"`
	ATRPct        float64       `json:"atr_pct"`
	RecentHigh    float64       `json:"recent_high"`
	RecentLow     float64       `json:"recent_low"`
	Equilibrium   float64       `json:"equilibrium"`
	PricePosition PricePosition `json:"price_position"`

	// Most-recent-first, capped at 5 per side.
	SwingHighs []SwingPoint `json:"swing_highs"`
	SwingLows  []SwingPoint `json:"swing_lows"`

	NearestResistance float64 `json:"nearest_resistance"`
	NearestSupport    float64 `json:"nearest_support"`

	// LiquidityAbove ascending, LiquidityBelow descending, capped at 3.
	LiquidityAbove []float64 `json:"liquidity_above"`
	LiquidityBelow []float64 `json:"liquidity_below"`

	BOSBullish bool `json:"bos_bullish"`
	BOSBearish bool `json:"bos_bearish"`

	// Most-recent-first, capped at 3.
	OrderBlocks []OrderBlock `json:"order_blocks"`
}
