package domain

import "time"

type Direction string

const (
	DirectionBuy  Direction = "BUY"
	DirectionSell Direction = "SELL"
)

type EntryType string

const (
	EntryMarket EntryType = "MARKET"
	EntryLimit  EntryType = "LIMIT"
)

// Mode is the holding-period profile a signal is computed for.
type Mode string

const (
	ModeScalping Mode = "scalping"
	ModeIntraday Mode = "intraday"
	ModeSwing    Mode = "swing"
)

// ModeConfig holds the per-mode tuning consulted by the level calculator.
type ModeConfig struct {
	StopBufferMultiplier float64 `json:"stop_buffer_multiplier"`
	MinimumRiskReward    float64 `json:"minimum_risk_reward"`
}

// SignalLevels is the trade proposal derived from a MarketStructure.
//
// For BUY: StopLoss < OptimalEntry < TakeProfit1 <= TakeProfit2 <= TakeProfit3,
// mirrored for SELL. RiskReward never falls below the active mode's minimum.
type SignalLevels struct {
	OptimalEntry   float64   `json:"optimal_entry"`
	CurrentPrice   float64   `json:"current_price"`
	StopLoss       float64   `json:"stop_loss"`
	TakeProfit1    float64   `json:"take_profit_1"`
	TakeProfit2    float64   `json:"take_profit_2"`
	TakeProfit3    float64   `json:"take_profit_3"`
	RiskReward     float64   `json:"risk_reward"`
	StopDistance   float64   `json:"stop_distance"`
	TargetDistance float64   `json:"target_distance"`
	EntryType      EntryType `json:"entry_type"`
}

// Analysis is the composite result of one engine run: structure report,
// resolved direction, trade levels, and confidence score.
type Analysis struct {
	Structure  *MarketStructure `json:"structure"`
	Direction  Direction        `json:"direction"`
	Levels     *SignalLevels    `json:"levels"`
	Confidence int              `json:"confidence"`
}

// Signal is a persisted analysis bound to a symbol.
type Signal struct {
	ID         string           `json:"id"`
	Symbol     string           `json:"symbol"`
	Timeframe  string           `json:"timeframe"`
	Mode       Mode             `json:"mode"`
	Direction  Direction        `json:"direction"`
	Levels     *SignalLevels    `json:"levels"`
	Structure  *MarketStructure `json:"structure"`
	Confidence int              `json:"confidence"`
	CreatedAt  time.Time        `json:"created_at"`
}
