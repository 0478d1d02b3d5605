package usecase_test

import (
	"testing"

	"github.com/alphamind/signal-engine/internal/domain"
	"github.com/alphamind/signal-engine/internal/usecase"
)

func TestConfidenceScore(t *testing.T) {
	scorer := usecase.NewConfidenceScorer()

	cases := []struct {
		name       string
		trend      domain.Trend
		position   domain.PricePosition
		direction  domain.Direction
		riskReward float64
		want       int
	}{
		{
			name:       "neutral baseline",
			trend:      domain.TrendRanging,
			position:   domain.PositionEquilibrium,
			direction:  domain.DirectionBuy,
			riskReward: 1.5,
			want:       50,
		},
		{
			name:       "trending against direction",
			trend:      domain.TrendBearish,
			position:   domain.PositionEquilibrium,
			direction:  domain.DirectionBuy,
			riskReward: 1.5,
			want:       65,
		},
		{
			name:       "trend and polarity aligned",
			trend:      domain.TrendBullish,
			position:   domain.PositionEquilibrium,
			direction:  domain.DirectionBuy,
			riskReward: 1.5,
			want:       80,
		},
		{
			name:       "discount buy",
			trend:      domain.TrendRanging,
			position:   domain.PositionDiscount,
			direction:  domain.DirectionBuy,
			riskReward: 1.0,
			want:       60,
		},
		{
			name:       "premium sell with good risk reward",
			trend:      domain.TrendRanging,
			position:   domain.PositionPremium,
			direction:  domain.DirectionSell,
			riskReward: 2.0,
			want:       70,
		},
		{
			name:       "everything aligned",
			trend:      domain.TrendBullish,
			position:   domain.PositionDiscount,
			direction:  domain.DirectionBuy,
			riskReward: 3.2,
			want:       100,
		},
		{
			name:       "undefined trend earns nothing",
			trend:      domain.TrendUndefined,
			position:   domain.PositionNeutral,
			direction:  domain.DirectionSell,
			riskReward: 2.5,
			want:       60,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			structure := &domain.MarketStructure{Trend: tc.trend, PricePosition: tc.position}
			got := scorer.Score(structure, tc.direction, tc.riskReward)
			if got != tc.want {
				t.Errorf("Expected score %d, got %d", tc.want, got)
			}
		})
	}
}

func TestConfidenceWithBoost(t *testing.T) {
	scorer := usecase.NewConfidenceScorer()

	if got := scorer.WithBoost(90, 25); got != 100 {
		t.Errorf("Expected clamp to 100, got %d", got)
	}
	if got := scorer.WithBoost(60, 15); got != 75 {
		t.Errorf("Expected 75, got %d", got)
	}
	if got := scorer.WithBoost(10, -40); got != 0 {
		t.Errorf("Expected clamp to 0, got %d", got)
	}
}
