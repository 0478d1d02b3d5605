package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/alphamind/signal-engine/internal/domain"
	"github.com/alphamind/signal-engine/internal/infrastructure/exchange"
	"github.com/alphamind/signal-engine/internal/infrastructure/logger"
	"github.com/alphamind/signal-engine/internal/infrastructure/storage"
	"github.com/alphamind/signal-engine/internal/usecase"
	"github.com/alphamind/signal-engine/internal/web"
)

type Config struct {
	Exchange struct {
		RESTEndpoint string `yaml:"rest_endpoint"`
		WSEndpoint   string `yaml:"ws_endpoint"`
	} `yaml:"exchange"`
	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`
	Logging struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"logging"`
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Scanner struct {
		Symbols    []string `yaml:"symbols"`
		Timeframe  string   `yaml:"timeframe"`
		Mode       string   `yaml:"mode"`
		IntervalMs int      `yaml:"interval_ms"`
	} `yaml:"scanner"`
}

func loadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func main() {
	// 1. Load Config
	configPath := "config/config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Init Logger
	var log *zap.Logger
	if cfg.Logging.File != "" {
		log, err = logger.NewFileLogger(cfg.Logging.Level, cfg.Logging.File)
	} else {
		log, err = logger.NewLogger(cfg.Logging.Level)
	}
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// 3. Init Storage
	dbPath := cfg.Storage.Path
	if dbPath == "" {
		dbPath = "signals.db"
	}
	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		log.Fatal("Failed to init sqlite", zap.Error(err))
	}
	defer store.Close()

	// 4. Init Exchange (Bybit, public endpoints only)
	restURL := cfg.Exchange.RESTEndpoint
	if restURL == "" {
		restURL = exchange.BybitBaseURL
	}
	wsURL := cfg.Exchange.WSEndpoint
	if wsURL == "" {
		wsURL = exchange.BybitWSURL
	}
	adapter := exchange.NewBybitAdapter(restURL, wsURL, log)

	// 5. Init Service
	svc := usecase.NewSignalService(store, adapter, log)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})

	// 6. Live price stream for the watched symbols
	if len(cfg.Scanner.Symbols) > 0 {
		adapter.OnPriceUpdate(func(symbol string, price float64) {
			log.Debug("price update", zap.String("symbol", symbol), zap.Float64("price", price))
		})
		if err := adapter.Subscribe(cfg.Scanner.Symbols); err != nil {
			log.Error("Failed to subscribe to price stream", zap.Error(err))
		}
	}

	// 7. Periodic signal scanner
	if len(cfg.Scanner.Symbols) > 0 && cfg.Scanner.IntervalMs > 0 {
		timeframe := cfg.Scanner.Timeframe
		if timeframe == "" {
			timeframe = "1h"
		}
		mode := domain.Mode(cfg.Scanner.Mode)
		if mode == "" {
			mode = domain.ModeIntraday
		}

		go func() {
			ticker := time.NewTicker(time.Duration(cfg.Scanner.IntervalMs) * time.Millisecond)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					for _, symbol := range cfg.Scanner.Symbols {
						if _, err := svc.GenerateSignal(context.Background(), symbol, timeframe, mode); err != nil {
							log.Error("Scan failed", zap.String("symbol", symbol), zap.Error(err))
						}
					}
				case <-done:
					return
				}
			}
		}()
	}

	// 8. Init Web Server
	port := cfg.Server.Port
	if port == 0 {
		port = 8080 // Default
	}
	server := web.NewServer(port, store, adapter, svc, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// 9. Wait for Shutdown
	<-stop
	close(done)

	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Shutdown failed", zap.Error(err))
	}
}
