package usecase

import (
	"math"

	"github.com/alphamind/signal-engine/internal/domain"
)

// fibRetracement is the golden-pocket retracement used for the fallback
// entry when no usable order block exists.
const fibRetracement = 0.618

// LevelCalculator turns a MarketStructure into concrete trade levels:
// optimal entry, ATR-buffered stop, and a three-step take-profit ladder
// that always honors the active mode's minimum risk-reward. Stateless and
// safe for concurrent use.
type LevelCalculator struct{}

func NewLevelCalculator() *LevelCalculator {
	return &LevelCalculator{}
}

// ComputeLevels is total for any structurally valid input: a degenerate
// zero or negative risk distance is not an error, the minimum risk-reward
// is simply treated as already satisfied.
func (c *LevelCalculator) ComputeLevels(
	currentPrice float64,
	structure *domain.MarketStructure,
	direction domain.Direction,
	mode domain.Mode,
	timeframe string,
) *domain.SignalLevels {
	decimals := 2
	if currentPrice < 10 {
		decimals = 4
	}

	cfg := ModeConfigFor(mode)
	buffer := structure.ATR * cfg.StopBufferMultiplier * TimeframeMultiplier(timeframe)

	sign := 1.0
	if direction == domain.DirectionSell {
		sign = -1.0
	}

	entry := optimalEntry(currentPrice, structure, direction)
	stop := stopLoss(entry, structure, direction, buffer)
	tp1 := takeProfit1(structure, direction)

	risk := sign * (entry - stop)
	reward := sign * (tp1 - entry)
	if risk > 0 && reward/risk < cfg.MinimumRiskReward {
		tp1 = entry + sign*risk*cfg.MinimumRiskReward
		reward = sign * (tp1 - entry)
	}

	tp2 := takeProfit2(structure, direction, entry, tp1, sign)
	tp3 := takeProfit3(structure, direction, entry, tp1, sign)
	// The range extreme can sit inside the TP2 extension; keep the ladder
	// ordered.
	if sign*(tp3-tp2) < 0 {
		tp3 = tp2
	}

	riskReward := cfg.MinimumRiskReward
	if risk > 0 {
		riskReward = reward / risk
	}

	entryType := domain.EntryLimit
	if roundTo(entry, decimals) == roundTo(currentPrice, decimals) {
		entryType = domain.EntryMarket
	}

	return &domain.SignalLevels{
		OptimalEntry:   roundTo(entry, decimals),
		CurrentPrice:   roundTo(currentPrice, decimals),
		StopLoss:       roundTo(stop, decimals),
		TakeProfit1:    roundTo(tp1, decimals),
		TakeProfit2:    roundTo(tp2, decimals),
		TakeProfit3:    roundTo(tp3, decimals),
		RiskReward:     roundTo(riskReward, 2),
		StopDistance:   roundTo(math.Abs(entry-stop), decimals),
		TargetDistance: roundTo(math.Abs(tp1-entry), decimals),
		EntryType:      entryType,
	}
}

// optimalEntry prefers the most recent order block aligned with the trade,
// as long as its entry zone sits on the favorable side of the market. The
// fallback is the 61.8% retracement of the recent range, itself capped at
// the current price so we never propose buying above or selling below
// market.
func optimalEntry(currentPrice float64, structure *domain.MarketStructure, direction domain.Direction) float64 {
	if direction == domain.DirectionBuy {
		if ob := latestOrderBlock(structure.OrderBlocks, domain.BullishOB); ob != nil && ob.EntryZone <= currentPrice {
			return ob.EntryZone
		}
		fib := structure.RecentHigh - fibRetracement*(structure.RecentHigh-structure.RecentLow)
		if fib > currentPrice {
			return currentPrice
		}
		return fib
	}

	if ob := latestOrderBlock(structure.OrderBlocks, domain.BearishOB); ob != nil && ob.EntryZone >= currentPrice {
		return ob.EntryZone
	}
	fib := structure.RecentLow + fibRetracement*(structure.RecentHigh-structure.RecentLow)
	if fib < currentPrice {
		return currentPrice
	}
	return fib
}

func latestOrderBlock(blocks []domain.OrderBlock, kind domain.OrderBlockKind) *domain.OrderBlock {
	for i := range blocks {
		if blocks[i].Kind == kind {
			return &blocks[i]
		}
	}
	return nil
}

// stopLoss anchors behind the nearest swing on the protected side of the
// entry, falling back to the nearest support/resistance, then pads by the
// ATR buffer.
func stopLoss(entry float64, structure *domain.MarketStructure, direction domain.Direction, buffer float64) float64 {
	if direction == domain.DirectionBuy {
		base := structure.NearestSupport
		found := false
		for _, sl := range structure.SwingLows {
			if sl.Price < entry && (!found || sl.Price > base) {
				base = sl.Price
				found = true
			}
		}
		return base - buffer
	}

	base := structure.NearestResistance
	found := false
	for _, sh := range structure.SwingHighs {
		if sh.Price > entry && (!found || sh.Price < base) {
			base = sh.Price
			found = true
		}
	}
	return base + buffer
}

// takeProfit1 targets the nearest liquidity zone in the trade's favor.
func takeProfit1(structure *domain.MarketStructure, direction domain.Direction) float64 {
	if direction == domain.DirectionBuy {
		if len(structure.LiquidityAbove) > 0 {
			return structure.LiquidityAbove[0]
		}
		return structure.NearestResistance
	}
	if len(structure.LiquidityBelow) > 0 {
		return structure.LiquidityBelow[0]
	}
	return structure.NearestSupport
}

// takeProfit2 steps to the next liquidity level past TP1 when one exists,
// otherwise extends TP1 by half the entry-to-TP1 distance.
func takeProfit2(structure *domain.MarketStructure, direction domain.Direction, entry, tp1, sign float64) float64 {
	if direction == domain.DirectionBuy {
		for _, zone := range structure.LiquidityAbove {
			if zone > tp1 {
				return zone
			}
		}
	} else {
		for _, zone := range structure.LiquidityBelow {
			if zone < tp1 {
				return zone
			}
		}
	}
	return tp1 + sign*0.5*math.Abs(tp1-entry)
}

// takeProfit3 targets the recent range extreme when it lies past TP1,
// otherwise extends TP1 by the full entry-to-TP1 distance.
func takeProfit3(structure *domain.MarketStructure, direction domain.Direction, entry, tp1, sign float64) float64 {
	if direction == domain.DirectionBuy && structure.RecentHigh > tp1 {
		return structure.RecentHigh
	}
	if direction == domain.DirectionSell && structure.RecentLow < tp1 {
		return structure.RecentLow
	}
	return tp1 + sign*math.Abs(tp1-entry)
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
