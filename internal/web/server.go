package web

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/alphamind/signal-engine/internal/domain"
	"github.com/alphamind/signal-engine/internal/usecase"
)

type Server struct {
	router  *http.ServeMux
	server  *http.Server
	repo    domain.SignalRepository
	market  domain.MarketDataSource
	service *usecase.SignalService
	logger  *zap.Logger
}

func NewServer(
	port int,
	repo domain.SignalRepository,
	market domain.MarketDataSource,
	service *usecase.SignalService,
	logger *zap.Logger,
) *Server {
	s := &Server{
		router:  http.NewServeMux(),
		repo:    repo,
		market:  market,
		service: service,
		logger:  logger,
	}
	s.routes()
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.router,
	}
	return s
}

func (s *Server) routes() {
	// Analysis
	s.router.HandleFunc("POST /api/analyze", s.handleAnalyze)

	// Signals
	s.router.HandleFunc("POST /api/signals/generate", s.handleGenerateSignal)
	s.router.HandleFunc("GET /api/signals", s.handleListSignals)
	s.router.HandleFunc("GET /api/signals/{id}", s.handleGetSignal)
	s.router.HandleFunc("DELETE /api/signals/{id}", s.handleDeleteSignal)

	// Candles
	s.router.HandleFunc("GET /api/candles", s.handleGetCandles)

	// Status
	s.router.HandleFunc("GET /status", s.handleStatus)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("Starting web server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
