package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/alphamind/signal-engine/internal/domain"
)

const defaultListLimit = 50

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeEngineError maps engine validation failures to 422 and everything
// else to 500.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrInsufficientData) || errors.Is(err, domain.ErrInvalidInput) {
		s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}
	s.logger.Error("Engine request failed", zap.Error(err))
	s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

type analyzeRequest struct {
	Bars         []domain.PriceBar `json:"bars"`
	CurrentPrice float64           `json:"current_price"`
	Direction    domain.Direction  `json:"direction,omitempty"`
	Mode         domain.Mode       `json:"mode,omitempty"`
	Timeframe    string            `json:"timeframe,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if req.Mode == "" {
		req.Mode = domain.ModeIntraday
	}
	if req.Timeframe == "" {
		req.Timeframe = "1h"
	}

	analysis, err := s.service.Evaluate(req.Bars, req.CurrentPrice, req.Direction, req.Mode, req.Timeframe)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, analysis)
}

type generateSignalRequest struct {
	Symbol    string      `json:"symbol"`
	Timeframe string      `json:"timeframe"`
	Mode      domain.Mode `json:"mode"`
}

func (s *Server) handleGenerateSignal(w http.ResponseWriter, r *http.Request) {
	var req generateSignalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if req.Symbol == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "symbol is required"})
		return
	}
	if req.Timeframe == "" {
		req.Timeframe = "1h"
	}
	if req.Mode == "" {
		req.Mode = domain.ModeIntraday
	}

	signal, err := s.service.GenerateSignal(r.Context(), req.Symbol, req.Timeframe, req.Mode)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, signal)
}

func (s *Server) handleListSignals(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			return
		}
		limit = parsed
	}

	signals, err := s.repo.ListSignals(r.Context(), limit)
	if err != nil {
		s.logger.Error("Failed to list signals", zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	if signals == nil {
		signals = []*domain.Signal{}
	}

	s.writeJSON(w, http.StatusOK, signals)
}

func (s *Server) handleGetSignal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	signal, err := s.repo.GetSignal(r.Context(), id)
	if err != nil {
		s.logger.Error("Failed to get signal", zap.String("id", id), zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	if signal == nil {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "signal not found"})
		return
	}

	s.writeJSON(w, http.StatusOK, signal)
}

func (s *Server) handleDeleteSignal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.repo.DeleteSignal(r.Context(), id); err != nil {
		s.logger.Error("Failed to delete signal", zap.String("id", id), zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetCandles(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "symbol is required"})
		return
	}

	interval := r.URL.Query().Get("interval")
	if interval == "" {
		interval = "1h"
	}

	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			return
		}
		limit = parsed
	}

	bars, err := s.market.GetCandles(r.Context(), symbol, interval, limit)
	if err != nil {
		s.logger.Error("Failed to fetch candles", zap.String("symbol", symbol), zap.Error(err))
		s.writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to fetch candles"})
		return
	}

	s.writeJSON(w, http.StatusOK, bars)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
