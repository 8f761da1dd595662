// Package main is the entry point for the inventory transaction engine API
// server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Clawwo/IasProductama-sub000/internal/domain/auth"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/bom"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/catalog"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/inbound"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/outbound"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/production"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/rawissue"
	v1 "github.com/Clawwo/IasProductama-sub000/internal/infrastructure/http/v1"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/storage/postgres"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/storage/postgres/auth_repo"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/storage/postgres/bom_repo"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/storage/postgres/catalog_repo"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/storage/postgres/document_repo"
	"github.com/Clawwo/IasProductama-sub000/pkg/config"
	"github.com/Clawwo/IasProductama-sub000/pkg/logger"
)

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

	ctx := logger.WithLogger(context.Background(), log)
	log.Info("starting inventory engine server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.DB.ConnectionString())
	if cfg.DB.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.DB.MaxConns)
	}
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Audit ---
	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	// --- Catalog stores ---
	items := catalog_repo.NewItemStore(txManager)
	rawMaterials := catalog_repo.NewRawMaterialStore(txManager)
	products := catalog_repo.NewProductStore(txManager)
	resolver := catalog.NewResolver(items, rawMaterials, products)

	// --- Document services ---
	inboundService := inbound.NewService(document_repo.NewInboundRepo(txManager), resolver, txManager, auditService)
	outboundService := outbound.NewService(document_repo.NewOutboundRepo(txManager), resolver, txManager, auditService)
	productionService := production.NewService(document_repo.NewProductionRepo(txManager), resolver, txManager, auditService)
	rawIssueService := rawissue.NewService(document_repo.NewRawIssueRepo(txManager), resolver, txManager, auditService)

	// --- BOM ---
	bomService := bom.NewService(bom_repo.NewRepo(txManager))

	// --- Auth ---
	jwtConfig := auth.DefaultJWTConfig(cfg.JWT.Secret)
	jwtConfig.Issuer = cfg.JWT.Issuer
	jwtConfig.AccessTokenTTL = cfg.JWT.TTL
	jwtService := auth.NewJWTService(jwtConfig)
	authService := auth.NewService(auth_repo.NewUserRepo(txManager), jwtService)

	// --- Idempotency ---
	idempotencyStore := postgres.NewIdempotencyStore(txManager, 10*time.Minute)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:              pool,
		Logger:            log,
		JWTValidator:      jwtService,
		AuthService:       authService,
		InboundService:    inboundService,
		OutboundService:   outboundService,
		ProductionService: productionService,
		RawIssueService:   rawIssueService,
		BOMService:        bomService,
		CatalogResolver:   resolver,
		Items:             items,
		RawMaterials:      rawMaterials,
		Products:          products,
		AuditService:      auditService,
		IdempotencyStore:  idempotencyStore,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	statsCtx, stopStats := context.WithCancel(ctx)
	defer stopStats()
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-statsCtx.Done():
				return
			case <-ticker.C:
				postgres.LogPoolStats(statsCtx, pool.Pool)
			}
		}
	}()

	go func() {
		log.Infow("server starting", "addr", cfg.HTTP.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
