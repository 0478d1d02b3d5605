package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/alphamind/signal-engine/internal/domain"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS signals (
			id TEXT PRIMARY KEY,
			symbol TEXT NOT NULL,
			timeframe TEXT NOT NULL,
			mode TEXT NOT NULL,
			direction TEXT NOT NULL,
			optimal_entry REAL NOT NULL,
			current_price REAL NOT NULL,
			stop_loss REAL NOT NULL,
			take_profit_1 REAL NOT NULL,
			take_profit_2 REAL NOT NULL,
			take_profit_3 REAL NOT NULL,
			risk_reward REAL NOT NULL,
			stop_distance REAL NOT NULL,
			target_distance REAL NOT NULL,
			entry_type TEXT NOT NULL,
			confidence INTEGER NOT NULL,
			structure TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_signals_symbol ON signals(symbol);`,
		`CREATE INDEX IF NOT EXISTS idx_signals_created_at ON signals(created_at);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("failed to exec query %s: %w", q, err)
		}
	}

	return nil
}

// SignalRepository Implementation

func (s *SQLiteStore) SaveSignal(ctx context.Context, signal *domain.Signal) error {
	structureJSON, err := json.Marshal(signal.Structure)
	if err != nil {
		return fmt.Errorf("failed to encode structure: %w", err)
	}

	query := `INSERT INTO signals (id, symbol, timeframe, mode, direction, optimal_entry, current_price, stop_loss, take_profit_1, take_profit_2, take_profit_3, risk_reward, stop_distance, target_distance, entry_type, confidence, structure, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, query,
		signal.ID, signal.Symbol, signal.Timeframe, string(signal.Mode), string(signal.Direction),
		signal.Levels.OptimalEntry, signal.Levels.CurrentPrice, signal.Levels.StopLoss,
		signal.Levels.TakeProfit1, signal.Levels.TakeProfit2, signal.Levels.TakeProfit3,
		signal.Levels.RiskReward, signal.Levels.StopDistance, signal.Levels.TargetDistance,
		string(signal.Levels.EntryType), signal.Confidence, string(structureJSON), signal.CreatedAt)
	return err
}

// GetSignal returns nil without an error when no signal has the given id.
func (s *SQLiteStore) GetSignal(ctx context.Context, id string) (*domain.Signal, error) {
	query := `SELECT id, symbol, timeframe, mode, direction, optimal_entry, current_price, stop_loss, take_profit_1, take_profit_2, take_profit_3, risk_reward, stop_distance, target_distance, entry_type, confidence, structure, created_at FROM signals WHERE id = ?`
	row := s.db.QueryRowContext(ctx, query, id)

	signal, err := scanSignal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return signal, nil
}

func (s *SQLiteStore) ListSignals(ctx context.Context, limit int) ([]*domain.Signal, error) {
	query := `SELECT id, symbol, timeframe, mode, direction, optimal_entry, current_price, stop_loss, take_profit_1, take_profit_2, take_profit_3, risk_reward, stop_distance, target_distance, entry_type, confidence, structure, created_at FROM signals ORDER BY created_at DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signals []*domain.Signal
	for rows.Next() {
		signal, err := scanSignal(rows)
		if err != nil {
			return nil, err
		}
		signals = append(signals, signal)
	}
	return signals, rows.Err()
}

func (s *SQLiteStore) DeleteSignal(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM signals WHERE id = ?", id)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSignal(row rowScanner) (*domain.Signal, error) {
	var (
		sig           domain.Signal
		levels        domain.SignalLevels
		mode          string
		direction     string
		entryType     string
		structureJSON string
	)

	err := row.Scan(&sig.ID, &sig.Symbol, &sig.Timeframe, &mode, &direction,
		&levels.OptimalEntry, &levels.CurrentPrice, &levels.StopLoss,
		&levels.TakeProfit1, &levels.TakeProfit2, &levels.TakeProfit3,
		&levels.RiskReward, &levels.StopDistance, &levels.TargetDistance,
		&entryType, &sig.Confidence, &structureJSON, &sig.CreatedAt)
	if err != nil {
		return nil, err
	}

	var structure domain.MarketStructure
	if err := json.Unmarshal([]byte(structureJSON), &structure); err != nil {
		return nil, fmt.Errorf("failed to decode structure for signal %s: %w", sig.ID, err)
	}

	sig.Mode = domain.Mode(mode)
	sig.Direction = domain.Direction(direction)
	levels.EntryType = domain.EntryType(entryType)
	sig.Levels = &levels
	sig.Structure = &structure
	return &sig, nil
}
