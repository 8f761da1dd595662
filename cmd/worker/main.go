// Package main is the entry point for the maintenance worker. It sweeps
// expired idempotency keys on a fixed interval so the replay table does not
// grow unbounded.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/storage/postgres"
	"github.com/Clawwo/IasProductama-sub000/pkg/config"
	"github.com/Clawwo/IasProductama-sub000/pkg/logger"
)

const sweepInterval = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.App.Env == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("starting maintenance worker")

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DB.ConnectionString()))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	store := postgres.NewIdempotencyStore(txManager, 10*time.Minute)

	sweeper := NewSweeper(store, log)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sweeper.Run(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	wg.Wait()
	log.Info("worker stopped")
}

// Sweeper deletes idempotency records past their replay window.
type Sweeper struct {
	store *postgres.IdempotencyStore
	log   *logger.Logger
}

func NewSweeper(store *postgres.IdempotencyStore, log *logger.Logger) *Sweeper {
	return &Sweeper{
		store: store,
		log:   log.WithComponent("sweeper"),
	}
}

// Run sweeps immediately, then on every tick until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	deleted, err := s.store.CleanupExpired(ctx)
	if err != nil {
		s.log.Warnw("idempotency sweep failed", "error", err)
		return
	}
	if deleted > 0 {
		s.log.Infow("idempotency keys swept", "deleted", deleted)
	}
}
