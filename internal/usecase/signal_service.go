package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alphamind/signal-engine/internal/domain"
)

const (
	// candleLimit is the bar window fetched per analysis. The engine's cost
	// is linear in it.
	candleLimit = 100

	// defaultPriceTTL bounds how long a fetched last price is reused before
	// the data source is asked again.
	defaultPriceTTL = 10 * time.Second
)

type cachedPrice struct {
	price  float64
	expiry time.Time
}

// SignalService drives the full pipeline: fetch candles and price, run the
// deterministic engine, persist the resulting signal. The engine itself
// stays pure; all I/O, caching and logging happen here.
type SignalService struct {
	analyzer *StructureAnalyzer
	levels   *LevelCalculator
	scorer   *ConfidenceScorer
	repo     domain.SignalRepository
	market   domain.MarketDataSource
	logger   *zap.Logger

	mu         sync.Mutex
	priceCache map[string]cachedPrice
	priceTTL   time.Duration
	timeNow    func() time.Time // For testing
}

func NewSignalService(repo domain.SignalRepository, market domain.MarketDataSource, logger *zap.Logger) *SignalService {
	return &SignalService{
		analyzer:   NewStructureAnalyzer(),
		levels:     NewLevelCalculator(),
		scorer:     NewConfidenceScorer(),
		repo:       repo,
		market:     market,
		logger:     logger,
		priceCache: make(map[string]cachedPrice),
		priceTTL:   defaultPriceTTL,
		timeNow:    time.Now,
	}
}

// ResolveDirection picks the trade direction from the structure report:
// trend polarity first, then price position, then the equilibrium side.
// Deterministic by construction.
func ResolveDirection(structure *domain.MarketStructure, currentPrice float64) domain.Direction {
	switch structure.Trend {
	case domain.TrendBullish:
		return domain.DirectionBuy
	case domain.TrendBearish:
		return domain.DirectionSell
	}
	switch structure.PricePosition {
	case domain.PositionDiscount:
		return domain.DirectionBuy
	case domain.PositionPremium:
		return domain.DirectionSell
	}
	if currentPrice <= structure.Equilibrium {
		return domain.DirectionBuy
	}
	return domain.DirectionSell
}

// Evaluate runs the pure engine over an already-fetched bar history. An
// empty direction means "resolve it from the structure". Nothing is
// persisted.
func (s *SignalService) Evaluate(
	bars []domain.PriceBar,
	currentPrice float64,
	direction domain.Direction,
	mode domain.Mode,
	timeframe string,
) (*domain.Analysis, error) {
	structure, err := s.analyzer.Analyze(bars, currentPrice)
	if err != nil {
		return nil, err
	}

	if direction == "" {
		direction = ResolveDirection(structure, currentPrice)
	}

	levels := s.levels.ComputeLevels(currentPrice, structure, direction, mode, timeframe)
	confidence := s.scorer.Score(structure, direction, levels.RiskReward)

	return &domain.Analysis{
		Structure:  structure,
		Direction:  direction,
		Levels:     levels,
		Confidence: confidence,
	}, nil
}

// GenerateSignal fetches market data for a symbol, evaluates it, and
// persists the resulting signal.
func (s *SignalService) GenerateSignal(ctx context.Context, symbol, timeframe string, mode domain.Mode) (*domain.Signal, error) {
	bars, err := s.market.GetCandles(ctx, symbol, timeframe, candleLimit)
	if err != nil {
		return nil, err
	}

	price, err := s.CurrentPrice(ctx, symbol)
	if err != nil {
		return nil, err
	}

	analysis, err := s.Evaluate(bars, price, "", mode, timeframe)
	if err != nil {
		return nil, err
	}

	signal := &domain.Signal{
		ID:         uuid.NewString(),
		Symbol:     symbol,
		Timeframe:  timeframe,
		Mode:       mode,
		Direction:  analysis.Direction,
		Levels:     analysis.Levels,
		Structure:  analysis.Structure,
		Confidence: analysis.Confidence,
		CreatedAt:  s.timeNow().UTC(),
	}

	if err := s.repo.SaveSignal(ctx, signal); err != nil {
		return nil, err
	}

	s.logger.Info("signal generated",
		zap.String("symbol", symbol),
		zap.String("direction", string(signal.Direction)),
		zap.Float64("entry", signal.Levels.OptimalEntry),
		zap.Float64("risk_reward", signal.Levels.RiskReward),
		zap.Int("confidence", signal.Confidence),
	)

	return signal, nil
}

// CurrentPrice returns the last price for a symbol, reusing a cached value
// inside the TTL window. The cache lives here, outside the engine.
func (s *SignalService) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	s.mu.Lock()
	if cached, ok := s.priceCache[symbol]; ok && s.timeNow().Before(cached.expiry) {
		s.mu.Unlock()
		return cached.price, nil
	}
	s.mu.Unlock()

	price, err := s.market.GetCurrentPrice(ctx, symbol)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.priceCache[symbol] = cachedPrice{price: price, expiry: s.timeNow().Add(s.priceTTL)}
	s.mu.Unlock()

	return price, nil
}
