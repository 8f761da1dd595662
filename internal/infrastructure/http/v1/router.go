// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/Clawwo/IasProductama-sub000/internal/domain/auth"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/bom"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/catalog"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/inbound"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/outbound"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/production"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/rawissue"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/http/v1/handlers"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/http/v1/middleware"
	"github.com/Clawwo/IasProductama-sub000/internal/infrastructure/storage/postgres"
	"github.com/Clawwo/IasProductama-sub000/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks).
	Pool *postgres.Pool

	// Logger for request logging.
	Logger *logger.Logger

	// JWTValidator for token validation.
	JWTValidator middleware.JWTValidator

	// Services.
	AuthService       *auth.Service
	InboundService    *inbound.Service
	OutboundService   *outbound.Service
	ProductionService *production.Service
	RawIssueService   *rawissue.Service
	BOMService        *bom.Service

	// Catalog read access.
	CatalogResolver *catalog.Resolver
	Items           catalog.Store
	RawMaterials    catalog.Store
	Products        catalog.Store

	// AuditService exposes the document audit trail when non-nil.
	AuditService *postgres.AuditService

	// IdempotencyStore enables duplicate-posting protection when non-nil.
	IdempotencyStore *postgres.IdempotencyStore
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Public auth endpoints
		authHandler := handlers.NewAuthHandler(cfg.AuthService)
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Protected endpoints
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))
		if cfg.IdempotencyStore != nil {
			protected.Use(middleware.Idempotency(cfg.IdempotencyStore))
		}

		inboundHandler := handlers.NewInboundHandler(cfg.InboundService)
		inbounds := protected.Group("/inbounds")
		{
			inbounds.POST("", inboundHandler.Create)
			inbounds.GET("", inboundHandler.List)
			inbounds.GET("/:id", inboundHandler.Get)
		}

		outboundHandler := handlers.NewOutboundHandler(cfg.OutboundService)
		outbounds := protected.Group("/outbounds")
		{
			outbounds.POST("", outboundHandler.Create)
			outbounds.GET("", outboundHandler.List)
			outbounds.GET("/:id", outboundHandler.Get)
		}

		productionHandler := handlers.NewProductionHandler(cfg.ProductionService)
		productions := protected.Group("/productions")
		{
			productions.POST("", productionHandler.Create)
			productions.GET("", productionHandler.List)
			productions.GET("/:id", productionHandler.Get)
		}

		rawIssueHandler := handlers.NewRawIssueHandler(cfg.RawIssueService)
		rawIssues := protected.Group("/raw-issues")
		{
			rawIssues.POST("", rawIssueHandler.Create)
			rawIssues.GET("", rawIssueHandler.List)
			rawIssues.GET("/:id", rawIssueHandler.Get)
			rawIssues.POST("/:id/lines/:lineId/receive", rawIssueHandler.ReceiveLine)
		}

		bomHandler := handlers.NewBOMHandler(cfg.BOMService)
		protected.GET("/boms/lookup", bomHandler.Lookup)

		if cfg.AuditService != nil {
			auditHandler := handlers.NewAuditHandler(cfg.AuditService)
			protected.GET("/audit/:entityType/:id", auditHandler.History)
		}

		catalogHandler := handlers.NewCatalogHandler(cfg.CatalogResolver, cfg.Items, cfg.RawMaterials, cfg.Products)
		catalogs := protected.Group("/catalogs")
		{
			catalogs.GET("/resolve/:code", catalogHandler.Resolve)
			catalogs.GET("/:catalog", catalogHandler.List)
		}
	}

	return router
}
