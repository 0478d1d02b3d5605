package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/alphamind/signal-engine/internal/domain"
	"github.com/alphamind/signal-engine/internal/infrastructure/exchange"
	"github.com/alphamind/signal-engine/internal/infrastructure/logger"
	"github.com/alphamind/signal-engine/internal/usecase"
)

// analyzer fetches a bar history for one symbol, runs a single analysis
// pass, and prints it as JSON. Nothing is persisted.
func main() {
	symbol := flag.String("symbol", "", "symbol to analyze, e.g. BTCUSDT")
	timeframe := flag.String("timeframe", "1h", "candle timeframe")
	mode := flag.String("mode", "intraday", "trading mode: scalping, intraday or swing")
	direction := flag.String("direction", "", "force direction BUY or SELL (default: resolve from structure)")
	limit := flag.Int("limit", 100, "bars to fetch")
	restURL := flag.String("rest-url", exchange.BybitBaseURL, "exchange REST endpoint")
	flag.Parse()

	if *symbol == "" {
		fmt.Fprintln(os.Stderr, "symbol is required")
		flag.Usage()
		os.Exit(1)
	}

	log, err := logger.NewLogger("error")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	adapter := exchange.NewBybitAdapter(*restURL, "", log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	bars, err := adapter.GetCandles(ctx, *symbol, *timeframe, *limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch candles: %v\n", err)
		os.Exit(1)
	}

	price, err := adapter.GetCurrentPrice(ctx, *symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch price: %v\n", err)
		os.Exit(1)
	}

	service := usecase.NewSignalService(nil, adapter, log)
	analysis, err := service.Evaluate(bars, price, domain.Direction(*direction), domain.Mode(*mode), *timeframe)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(analysis); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode analysis: %v\n", err)
		os.Exit(1)
	}
}
