package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/alphamind/signal-engine/internal/domain"
)

const (
	BybitBaseURL = "https://api.bybit.com"
	BybitWSURL   = "wss://stream.bybit.com/v5/public/linear"
)

// intervalCodes maps timeframe labels to Bybit V5 kline interval codes.
var intervalCodes = map[string]string{
	"1m":  "1",
	"3m":  "3",
	"5m":  "5",
	"15m": "15",
	"30m": "30",
	"1h":  "60",
	"2h":  "120",
	"4h":  "240",
	"1d":  "D",
	"1w":  "W",
}

// BybitAdapter is a read-only market data source backed by Bybit's public
// V5 REST and websocket APIs. No credentials are needed.
type BybitAdapter struct {
	baseURL   string
	wsURL     string
	client    *http.Client
	logger    *zap.Logger
	wsConn    *websocket.Conn
	callbacks []func(symbol string, price float64)
	mu        sync.Mutex
}

func NewBybitAdapter(baseURL, wsURL string, logger *zap.Logger) *BybitAdapter {
	return &BybitAdapter{
		baseURL: baseURL,
		wsURL:   wsURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

// --- REST API ---

func (b *BybitAdapter) sendRequest(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("API error: %s", string(body))
	}

	return body, nil
}

func (b *BybitAdapter) GetCurrentPrice(ctx context.Context, symbol string) (float64, error) {
	path := "/v5/market/tickers?category=linear&symbol=" + symbol
	body, err := b.sendRequest(ctx, path)
	if err != nil {
		return 0, err
	}

	var result struct {
		RetCode int `json:"retCode"`
		Result  struct {
			List []struct {
				LastPrice string `json:"lastPrice"`
			} `json:"list"`
		} `json:"result"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return 0, err
	}

	if result.RetCode != 0 {
		return 0, fmt.Errorf("bybit ticker error: %d", result.RetCode)
	}
	if len(result.Result.List) == 0 {
		return 0, fmt.Errorf("symbol not found: %s", symbol)
	}

	return strconv.ParseFloat(result.Result.List[0].LastPrice, 64)
}

// GetCandles returns up to limit bars in chronological order. Bybit serves
// them newest first, so the list is reversed before returning.
func (b *BybitAdapter) GetCandles(ctx context.Context, symbol, interval string, limit int) ([]domain.PriceBar, error) {
	code, ok := intervalCodes[interval]
	if !ok {
		return nil, fmt.Errorf("unsupported interval: %s", interval)
	}

	path := fmt.Sprintf("/v5/market/kline?category=linear&symbol=%s&interval=%s&limit=%d", symbol, code, limit)
	body, err := b.sendRequest(ctx, path)
	if err != nil {
		return nil, err
	}

	var result struct {
		RetCode int `json:"retCode"`
		Result  struct {
			List [][]string `json:"list"`
		} `json:"result"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}

	if result.RetCode != 0 {
		return nil, fmt.Errorf("bybit kline error: %d", result.RetCode)
	}

	var bars []domain.PriceBar
	for _, raw := range result.Result.List {
		// Format: [startTime, open, high, low, close, volume, turnover]
		if len(raw) < 5 {
			continue
		}

		ts, _ := strconv.ParseInt(raw[0], 10, 64)
		open, _ := strconv.ParseFloat(raw[1], 64)
		high, _ := strconv.ParseFloat(raw[2], 64)
		low, _ := strconv.ParseFloat(raw[3], 64)
		closePrice, _ := strconv.ParseFloat(raw[4], 64)

		bars = append(bars, domain.PriceBar{
			Timestamp: ts,
			Open:      open,
			High:      high,
			Low:       low,
			Close:     closePrice,
		})
	}

	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}

	return bars, nil
}

// --- WebSocket ---

func (b *BybitAdapter) OnPriceUpdate(callback func(symbol string, price float64)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.callbacks = append(b.callbacks, callback)
}

// Subscribe opens the websocket connection on first use and subscribes to
// the ticker stream of each symbol.
func (b *BybitAdapter) Subscribe(symbols []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.wsConn == nil {
		c, _, err := websocket.DefaultDialer.Dial(b.wsURL, nil)
		if err != nil {
			return err
		}
		b.wsConn = c
		go b.readLoop(c)
	}

	return b.subscribe(symbols)
}

func (b *BybitAdapter) subscribe(symbols []string) error {
	if len(symbols) == 0 {
		return nil
	}

	args := make([]interface{}, len(symbols))
	for i, s := range symbols {
		args[i] = "tickers." + s
	}

	subMsg := map[string]interface{}{
		"op":   "subscribe",
		"args": args,
	}
	return b.wsConn.WriteJSON(subMsg)
}

func (b *BybitAdapter) readLoop(conn *websocket.Conn) {
	defer func() {
		conn.Close()
		b.mu.Lock()
		if b.wsConn == conn {
			b.wsConn = nil
		}
		b.mu.Unlock()
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			b.logger.Warn("websocket read failed", zap.Error(err))
			return
		}

		var event struct {
			Topic string `json:"topic"`
			Data  struct {
				Symbol    string `json:"symbol"`
				LastPrice string `json:"lastPrice"`
			} `json:"data"`
		}
		if err := json.Unmarshal(message, &event); err != nil {
			b.logger.Warn("websocket message decode failed", zap.Error(err))
			continue
		}

		if !strings.HasPrefix(event.Topic, "tickers.") {
			continue
		}
		// Delta frames may omit lastPrice; skip those.
		if event.Data.LastPrice == "" {
			continue
		}

		price, err := strconv.ParseFloat(event.Data.LastPrice, 64)
		if err != nil {
			continue
		}

		symbol := event.Data.Symbol
		if symbol == "" {
			symbol = strings.TrimPrefix(event.Topic, "tickers.")
		}

		b.mu.Lock()
		callbacks := make([]func(string, float64), len(b.callbacks))
		copy(callbacks, b.callbacks)
		b.mu.Unlock()

		for _, cb := range callbacks {
			cb(symbol, price)
		}
	}
}
