package usecase

import "github.com/alphamind/signal-engine/internal/domain"

const (
	baseConfidence       = 50
	trendingBonus        = 15
	polarityBonus        = 15
	positionBonus        = 10
	riskRewardBonus      = 10
	riskRewardBonusFloor = 2.0
)

// ConfidenceScorer produces a deterministic 0-100 score for a proposed
// trade. It replaced an older randomized variant and must never be mixed
// with one: identical inputs always score identically.
type ConfidenceScorer struct{}

func NewConfidenceScorer() *ConfidenceScorer {
	return &ConfidenceScorer{}
}

// Score starts at 50 and adds fixed bonuses for a trending market, a
// direction aligned with the trend, a favorable price position, and a
// risk-reward of at least 2.0.
func (s *ConfidenceScorer) Score(structure *domain.MarketStructure, direction domain.Direction, riskReward float64) int {
	score := baseConfidence

	if structure.Trend == domain.TrendBullish || structure.Trend == domain.TrendBearish {
		score += trendingBonus
	}
	if (structure.Trend == domain.TrendBullish && direction == domain.DirectionBuy) ||
		(structure.Trend == domain.TrendBearish && direction == domain.DirectionSell) {
		score += polarityBonus
	}
	if (structure.PricePosition == domain.PositionDiscount && direction == domain.DirectionBuy) ||
		(structure.PricePosition == domain.PositionPremium && direction == domain.DirectionSell) {
		score += positionBonus
	}
	if riskReward >= riskRewardBonusFloor {
		score += riskRewardBonus
	}

	return score
}

// WithBoost applies an externally supplied adjustment (e.g. a caller-side
// confluence bonus) and clamps the combined value to [0, 100].
func (s *ConfidenceScorer) WithBoost(score, boost int) int {
	total := score + boost
	if total > 100 {
		return 100
	}
	if total < 0 {
		return 0
	}
	return total
}
