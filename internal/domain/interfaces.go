package domain

import "context"

// MarketDataSource supplies candles and prices. Fetching, caching and
// retrying network calls live behind this boundary, never in the engine.
type MarketDataSource interface {
	GetCandles(ctx context.Context, symbol, interval string, limit int) ([]PriceBar, error)
	GetCurrentPrice(ctx context.Context, symbol string) (float64, error)
	OnPriceUpdate(callback func(symbol string, price float64))
	Subscribe(symbols []string) error
}

// SignalRepository defines storage operations for generated signals.
type SignalRepository interface {
	SaveSignal(ctx context.Context, signal *Signal) error
	GetSignal(ctx context.Context, id string) (*Signal, error)
	ListSignals(ctx context.Context, limit int) ([]*Signal, error)
	DeleteSignal(ctx context.Context, id string) error
}
