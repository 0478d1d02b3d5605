package usecase

import (
	"fmt"
	"math"
	"sort"

	"github.com/alphamind/signal-engine/internal/domain"
)

const (
	minBars            = 10
	atrPeriod          = 14
	rangeLookback      = 20
	maxSwings          = 5
	maxLiquidityZones  = 3
	maxOrderBlocks     = 3
	orderBlockLookback = 5
	swingNeighborhood  = 2

	premiumThreshold  = 70.0
	discountThreshold = 30.0
)

// StructureAnalyzer derives a MarketStructure report from a bar history and
// the current price. It is stateless: every call operates only on its own
// inputs and is safe for concurrent use.
type StructureAnalyzer struct{}

func NewStructureAnalyzer() *StructureAnalyzer {
	return &StructureAnalyzer{}
}

// Analyze validates the inputs and produces the structure report.
// It returns domain.ErrInsufficientData for histories shorter than 10 bars
// and domain.ErrInvalidInput for malformed bars; no partial result is ever
// returned.
func (a *StructureAnalyzer) Analyze(bars []domain.PriceBar, currentPrice float64) (*domain.MarketStructure, error) {
	if len(bars) < minBars {
		return nil, fmt.Errorf("%w: got %d bars, need at least %d", domain.ErrInsufficientData, len(bars), minBars)
	}
	if err := validateBars(bars, currentPrice); err != nil {
		return nil, err
	}

	swingHighs, swingLows := findSwings(bars)

	recentHigh, recentLow := recentRange(bars)
	equilibrium := (recentHigh + recentLow) / 2

	atr := averageTrueRange(bars)
	atrPct := 0.0
	if currentPrice > 0 {
		atrPct = 100 * atr / currentPrice
	}

	liquidityAbove := liquidityAbovePrice(swingHighs, currentPrice)
	liquidityBelow := liquidityBelowPrice(swingLows, currentPrice)

	nearestResistance := recentHigh
	if len(liquidityAbove) > 0 {
		nearestResistance = liquidityAbove[0]
	}
	nearestSupport := recentLow
	if len(liquidityBelow) > 0 {
		nearestSupport = liquidityBelow[0]
	}

	return &domain.MarketStructure{
		Trend:             classifyTrend(swingHighs, swingLows),
		ATR:               atr,
		ATRPct:            atrPct,
		RecentHigh:        recentHigh,
		RecentLow:         recentLow,
		Equilibrium:       equilibrium,
		PricePosition:     classifyPricePosition(currentPrice, recentHigh, recentLow),
		SwingHighs:        swingHighs,
		SwingLows:         swingLows,
		NearestResistance: nearestResistance,
		NearestSupport:    nearestSupport,
		LiquidityAbove:    liquidityAbove,
		LiquidityBelow:    liquidityBelow,
		BOSBullish:        detectBreakAbove(swingHighs, currentPrice),
		BOSBearish:        detectBreakBelow(swingLows, currentPrice),
		OrderBlocks:       findOrderBlocks(bars),
	}, nil
}

func validateBars(bars []domain.PriceBar, currentPrice float64) error {
	if !isFinite(currentPrice) || currentPrice <= 0 {
		return fmt.Errorf("%w: current price %v", domain.ErrInvalidInput, currentPrice)
	}
	for i, b := range bars {
		if !isFinite(b.Open) || !isFinite(b.High) || !isFinite(b.Low) || !isFinite(b.Close) {
			return fmt.Errorf("%w: non-finite price in bar %d", domain.ErrInvalidInput, i)
		}
		if b.High < b.Low {
			return fmt.Errorf("%w: bar %d has high %v below low %v", domain.ErrInvalidInput, i, b.High, b.Low)
		}
		if i > 0 && b.Timestamp <= bars[i-1].Timestamp {
			return fmt.Errorf("%w: non-increasing timestamp at bar %d", domain.ErrInvalidInput, i)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// findSwings scans interior bars for local extrema: a swing high is a high
// strictly above the highs of the two bars on each side, and symmetrically
// for swing lows. The five most recent of each kind are retained,
// most-recent-first.
func findSwings(bars []domain.PriceBar) (highs, lows []domain.SwingPoint) {
	n := len(bars)
	for i := swingNeighborhood; i < n-swingNeighborhood; i++ {
		if bars[i].High > bars[i-1].High && bars[i].High > bars[i-2].High &&
			bars[i].High > bars[i+1].High && bars[i].High > bars[i+2].High {
			highs = append(highs, domain.SwingPoint{Price: bars[i].High, Index: i, Kind: domain.SwingHigh})
		}
		if bars[i].Low < bars[i-1].Low && bars[i].Low < bars[i-2].Low &&
			bars[i].Low < bars[i+1].Low && bars[i].Low < bars[i+2].Low {
			lows = append(lows, domain.SwingPoint{Price: bars[i].Low, Index: i, Kind: domain.SwingLow})
		}
	}
	return mostRecentSwings(highs), mostRecentSwings(lows)
}

func mostRecentSwings(points []domain.SwingPoint) []domain.SwingPoint {
	if len(points) > maxSwings {
		points = points[len(points)-maxSwings:]
	}
	// Reverse to most-recent-first.
	out := make([]domain.SwingPoint, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	return out
}

// classifyTrend compares the two most recent swings of each kind. A higher
// high with a higher low is bullish, a lower high with a lower low is
// bearish, anything mixed is ranging. With fewer than two swings of either
// kind the trend is undefined.
func classifyTrend(highs, lows []domain.SwingPoint) domain.Trend {
	if len(highs) < 2 || len(lows) < 2 {
		return domain.TrendUndefined
	}
	higherHigh := highs[0].Price > highs[1].Price
	higherLow := lows[0].Price > lows[1].Price
	lowerHigh := highs[0].Price < highs[1].Price
	lowerLow := lows[0].Price < lows[1].Price

	switch {
	case higherHigh && higherLow:
		return domain.TrendBullish
	case lowerHigh && lowerLow:
		return domain.TrendBearish
	default:
		return domain.TrendRanging
	}
}

// averageTrueRange is the arithmetic mean of the last min(14, n-1) true
// ranges, where the true range of bar i is
// max(high-low, |high-prevClose|, |low-prevClose|).
func averageTrueRange(bars []domain.PriceBar) float64 {
	trueRanges := make([]float64, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		tr := bars[i].High - bars[i].Low
		if hc := math.Abs(bars[i].High - bars[i-1].Close); hc > tr {
			tr = hc
		}
		if lc := math.Abs(bars[i].Low - bars[i-1].Close); lc > tr {
			tr = lc
		}
		trueRanges = append(trueRanges, tr)
	}

	n := atrPeriod
	if len(trueRanges) < n {
		n = len(trueRanges)
	}
	sum := 0.0
	for _, tr := range trueRanges[len(trueRanges)-n:] {
		sum += tr
	}
	return sum / float64(n)
}

func recentRange(bars []domain.PriceBar) (high, low float64) {
	window := bars
	if len(bars) > rangeLookback {
		window = bars[len(bars)-rangeLookback:]
	}
	high = window[0].High
	low = window[0].Low
	for _, b := range window[1:] {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	return high, low
}

func classifyPricePosition(currentPrice, recentHigh, recentLow float64) domain.PricePosition {
	rangeSize := recentHigh - recentLow
	if rangeSize <= 0 {
		return domain.PositionNeutral
	}
	pct := 100 * (currentPrice - recentLow) / rangeSize
	switch {
	case pct > premiumThreshold:
		return domain.PositionPremium
	case pct < discountThreshold:
		return domain.PositionDiscount
	default:
		return domain.PositionEquilibrium
	}
}

// detectBreakAbove scans retained swing highs most-recent-first and reports
// a bullish break of structure when the current price exceeds a swing high
// that no more recent swing high had already exceeded.
func detectBreakAbove(highs []domain.SwingPoint, currentPrice float64) bool {
	for i, sh := range highs {
		if currentPrice <= sh.Price {
			continue
		}
		exceeded := false
		for _, newer := range highs[:i] {
			if newer.Price > sh.Price {
				exceeded = true
				break
			}
		}
		if !exceeded {
			return true
		}
	}
	return false
}

func detectBreakBelow(lows []domain.SwingPoint, currentPrice float64) bool {
	for i, sl := range lows {
		if currentPrice >= sl.Price {
			continue
		}
		undercut := false
		for _, newer := range lows[:i] {
			if newer.Price < sl.Price {
				undercut = true
				break
			}
		}
		if !undercut {
			return true
		}
	}
	return false
}

// findOrderBlocks scans the last five interior bars for a bar whose range
// precedes a strong move through it: a bearish bar whose follower closes
// above its high marks a bullish order block, a bullish bar whose follower
// closes below its low marks a bearish one. The three most recent blocks
// are retained, most-recent-first.
func findOrderBlocks(bars []domain.PriceBar) []domain.OrderBlock {
	n := len(bars)
	start := n - orderBlockLookback - 1
	if start < 0 {
		start = 0
	}

	var blocks []domain.OrderBlock
	for i := start; i < n-1; i++ {
		cur, next := bars[i], bars[i+1]
		if cur.Bearish() && next.Close > cur.High {
			blocks = append(blocks, domain.OrderBlock{
				Kind:      domain.BullishOB,
				High:      cur.High,
				Low:       cur.Low,
				EntryZone: (cur.High + cur.Low) / 2,
			})
		} else if cur.Bullish() && next.Close < cur.Low {
			blocks = append(blocks, domain.OrderBlock{
				Kind:      domain.BearishOB,
				High:      cur.High,
				Low:       cur.Low,
				EntryZone: (cur.High + cur.Low) / 2,
			})
		}
	}

	if len(blocks) > maxOrderBlocks {
		blocks = blocks[len(blocks)-maxOrderBlocks:]
	}
	// Most-recent-first.
	for i, j := 0, len(blocks)-1; i < j; i, j = i+1, j-1 {
		blocks[i], blocks[j] = blocks[j], blocks[i]
	}
	return blocks
}

// liquidityAbovePrice returns up to three retained swing-high prices above
// the current price, nearest first (ascending).
func liquidityAbovePrice(highs []domain.SwingPoint, currentPrice float64) []float64 {
	var zones []float64
	for _, sh := range highs {
		if sh.Price > currentPrice {
			zones = append(zones, sh.Price)
		}
	}
	sort.Float64s(zones)
	if len(zones) > maxLiquidityZones {
		zones = zones[:maxLiquidityZones]
	}
	return zones
}

// liquidityBelowPrice returns up to three retained swing-low prices below
// the current price, nearest first (descending).
func liquidityBelowPrice(lows []domain.SwingPoint, currentPrice float64) []float64 {
	var zones []float64
	for _, sl := range lows {
		if sl.Price < currentPrice {
			zones = append(zones, sl.Price)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(zones)))
	if len(zones) > maxLiquidityZones {
		zones = zones[:maxLiquidityZones]
	}
	return zones
}
