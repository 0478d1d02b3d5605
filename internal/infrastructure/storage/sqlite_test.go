package storage_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphamind/signal-engine/internal/domain"
	"github.com/alphamind/signal-engine/internal/infrastructure/storage"
)

func newTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	store, err := storage.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testSignal(id string, createdAt time.Time) *domain.Signal {
	return &domain.Signal{
		ID:        id,
		Symbol:    "BTCUSDT",
		Timeframe: "1h",
		Mode:      domain.ModeIntraday,
		Direction: domain.DirectionBuy,
		Levels: &domain.SignalLevels{
			OptimalEntry:   112.5,
			CurrentPrice:   119.5,
			StopLoss:       110.16,
			TakeProfit1:    121.0,
			TakeProfit2:    125.25,
			TakeProfit3:    129.5,
			RiskReward:     3.63,
			StopDistance:   2.34,
			TargetDistance: 8.5,
			EntryType:      domain.EntryLimit,
		},
		Structure: &domain.MarketStructure{
			Trend:         domain.TrendBullish,
			PricePosition: domain.PositionPremium,
			ATR:           4.21,
			RecentHigh:    121.0,
			RecentLow:     97.0,
			Equilibrium:   109.0,
			SwingHighs: []domain.SwingPoint{
				{Price: 117.0, Index: 18, Kind: domain.SwingHigh},
			},
			SwingLows: []domain.SwingPoint{
				{Price: 111.0, Index: 16, Kind: domain.SwingLow},
			},
			LiquidityBelow: []float64{111.0, 107.0, 103.0},
			BOSBullish:     true,
		},
		Confidence: 90,
		CreatedAt:  createdAt,
	}
}

func TestSaveAndGetSignal(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := testSignal("sig-1", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, store.SaveSignal(ctx, want))

	got, err := store.GetSignal(ctx, "sig-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Symbol, got.Symbol)
	assert.Equal(t, want.Timeframe, got.Timeframe)
	assert.Equal(t, want.Mode, got.Mode)
	assert.Equal(t, want.Direction, got.Direction)
	assert.Equal(t, want.Confidence, got.Confidence)
	assert.Equal(t, want.Levels, got.Levels)
	assert.Equal(t, want.Structure, got.Structure)
	assert.WithinDuration(t, want.CreatedAt, got.CreatedAt, time.Second)
}

func TestGetSignalNotFound(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetSignal(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListSignalsNewestFirstWithLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		sig := testSignal(fmt.Sprintf("sig-%d", i), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.SaveSignal(ctx, sig))
	}

	signals, err := store.ListSignals(ctx, 3)
	require.NoError(t, err)
	require.Len(t, signals, 3)

	assert.Equal(t, "sig-4", signals[0].ID)
	assert.Equal(t, "sig-3", signals[1].ID)
	assert.Equal(t, "sig-2", signals[2].ID)
}

func TestDeleteSignal(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sig := testSignal("sig-1", time.Now().UTC())
	require.NoError(t, store.SaveSignal(ctx, sig))

	require.NoError(t, store.DeleteSignal(ctx, "sig-1"))

	got, err := store.GetSignal(ctx, "sig-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting an unknown id is not an error.
	require.NoError(t, store.DeleteSignal(ctx, "sig-1"))
}
