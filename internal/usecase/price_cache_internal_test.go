package usecase

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/alphamind/signal-engine/internal/domain"
)

type fakeMarket struct {
	prices []float64
	calls  int
}

func (m *fakeMarket) GetCandles(ctx context.Context, symbol, interval string, limit int) ([]domain.PriceBar, error) {
	return nil, nil
}

func (m *fakeMarket) GetCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	price := m.prices[m.calls%len(m.prices)]
	m.calls++
	return price, nil
}

func (m *fakeMarket) OnPriceUpdate(callback func(symbol string, price float64)) {}

func (m *fakeMarket) Subscribe(symbols []string) error { return nil }

type noopRepo struct{}

func (noopRepo) SaveSignal(ctx context.Context, signal *domain.Signal) error { return nil }
func (noopRepo) GetSignal(ctx context.Context, id string) (*domain.Signal, error) {
	return nil, nil
}
func (noopRepo) ListSignals(ctx context.Context, limit int) ([]*domain.Signal, error) {
	return nil, nil
}
func (noopRepo) DeleteSignal(ctx context.Context, id string) error { return nil }

func TestPriceCacheExpiry(t *testing.T) {
	market := &fakeMarket{prices: []float64{100.0, 200.0}}
	service := NewSignalService(noopRepo{}, market, zap.NewNop())

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	service.timeNow = func() time.Time { return now }

	price, err := service.CurrentPrice(context.Background(), "ETHUSDT")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if price != 100.0 {
		t.Errorf("Expected first fetch to return 100.0, got %v", price)
	}

	// Inside the TTL window: served from the cache.
	now = now.Add(defaultPriceTTL - time.Second)
	price, err = service.CurrentPrice(context.Background(), "ETHUSDT")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if price != 100.0 {
		t.Errorf("Expected cached price 100.0, got %v", price)
	}
	if market.calls != 1 {
		t.Errorf("Expected 1 data source call, got %d", market.calls)
	}

	// Past the TTL: the next lookup refetches.
	now = now.Add(2 * time.Second)
	price, err = service.CurrentPrice(context.Background(), "ETHUSDT")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if price != 200.0 {
		t.Errorf("Expected refreshed price 200.0, got %v", price)
	}
	if market.calls != 2 {
		t.Errorf("Expected 2 data source calls, got %d", market.calls)
	}
}

func TestPriceCacheIsPerSymbol(t *testing.T) {
	market := &fakeMarket{prices: []float64{100.0, 200.0}}
	service := NewSignalService(noopRepo{}, market, zap.NewNop())

	first, _ := service.CurrentPrice(context.Background(), "BTCUSDT")
	second, _ := service.CurrentPrice(context.Background(), "ETHUSDT")

	if first != 100.0 || second != 200.0 {
		t.Errorf("Expected distinct symbols to fetch independently, got %v and %v", first, second)
	}
	if market.calls != 2 {
		t.Errorf("Expected 2 data source calls, got %d", market.calls)
	}
}
