package usecase

import "github.com/alphamind/signal-engine/internal/domain"

// modeConfigs maps each trading mode to its stop buffer multiplier and the
// minimum risk-reward the level calculator must guarantee. The minimum RR
// grows with the holding period.
var modeConfigs = map[domain.Mode]domain.ModeConfig{
	domain.ModeScalping: {StopBufferMultiplier: 0.3, MinimumRiskReward: 1.5},
	domain.ModeIntraday: {StopBufferMultiplier: 0.2, MinimumRiskReward: 2.0},
	domain.ModeSwing:    {StopBufferMultiplier: 0.15, MinimumRiskReward: 2.5},
}

// ModeConfigFor returns the configuration for a mode. Unrecognized modes
// fall back to the intraday row; this default is deliberate, not a silent
// substitution by a neighboring entry.
func ModeConfigFor(mode domain.Mode) domain.ModeConfig {
	if cfg, ok := modeConfigs[mode]; ok {
		return cfg
	}
	return modeConfigs[domain.ModeIntraday]
}

// timeframeMultipliers scales the stop buffer by timeframe: finer
// timeframes tighten the stop, coarser ones widen it.
var timeframeMultipliers = map[string]float64{
	"1m":  0.5,
	"3m":  0.6,
	"5m":  0.7,
	"15m": 0.8,
	"30m": 0.9,
	"1h":  1.0,
	"2h":  1.1,
	"4h":  1.2,
	"1d":  1.5,
	"1w":  2.0,
}

// TimeframeMultiplier resolves a timeframe label. Unknown labels fall back
// to 1.0 explicitly.
func TimeframeMultiplier(timeframe string) float64 {
	if m, ok := timeframeMultipliers[timeframe]; ok {
		return m
	}
	return 1.0
}
