package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"polymarket-wrapped/internal/client/ipfs"
	polymarketdata "polymarket-wrapped/internal/client/polymarket/data"
	polymarketgamma "polymarket-wrapped/internal/client/polymarket/gamma"
	"polymarket-wrapped/internal/config"
	cronrunner "polymarket-wrapped/internal/cron"
	"polymarket-wrapped/internal/db"
	"polymarket-wrapped/internal/handler"
	"polymarket-wrapped/internal/logger"
	gormrepository "polymarket-wrapped/internal/repository/gorm"
	"polymarket-wrapped/internal/service"

	_ "polymarket-wrapped/docs"
)

func main() {
	cfgPath := os.Getenv("WRAPPED_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("WRAPPED_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	dataHTTP := &http.Client{Timeout: cfg.DataAPI.Timeout}
	dataClient := polymarketdata.NewClient(dataHTTP, cfg.DataAPI.BaseURL)
	gammaHTTP := &http.Client{Timeout: cfg.Gamma.Timeout}
	gammaClient := polymarketgamma.NewClient(gammaHTTP, cfg.Gamma.BaseURL)
	ipfsHTTP := &http.Client{Timeout: cfg.IPFS.Timeout}
	pinner := ipfs.NewClient(ipfsHTTP, cfg.IPFS.BaseURL, cfg.IPFS.GatewayURL, cfg.IPFS.JWT)

	store := gormrepository.New(dbConn.Gorm)

	wrappedSvc := &service.WrappedService{
		Source:           dataClient,
		Catalog:          gammaClient,
		Logger:           logger,
		Year:             cfg.Wrapped.ReportYear,
		FetchLimit:       cfg.Wrapped.FetchLimit,
		TradeLimit:       cfg.Wrapped.TradeLimit,
		PositionLimit:    cfg.Wrapped.PositionLimit,
		EnrichCategories: cfg.Wrapped.EnrichCategories,
		MaxMarketLookups: cfg.Wrapped.MaxMarketLookups,
	}
	pinCodeSvc := &service.PinCodeService{
		Repo:   store,
		Logger: logger,
		Length: cfg.PinCode.Length,
		TTL:    cfg.PinCode.TTL,
	}
	badgeSvc := &service.BadgeService{
		Repo:   store,
		Pinner: pinner,
		Logger: logger,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn}
	healthHandler.Register(engine)
	handler.RegisterDocs(engine)
	wrappedHandler := &handler.WrappedHandler{Wrapped: wrappedSvc, Logger: logger}
	wrappedHandler.Register(engine)
	pinCodeHandler := &handler.PinCodeHandler{PinCodes: pinCodeSvc, Wrapped: wrappedSvc, Logger: logger}
	pinCodeHandler.Register(engine)
	badgeHandler := &handler.BadgeHandler{Badges: badgeSvc, Wrapped: wrappedSvc, Logger: logger}
	badgeHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	_, err = cronRunner.Add(cfg.PinCode.PurgeSpec, func(ctx context.Context) {
		n, err := pinCodeSvc.PurgeExpired(ctx)
		if err != nil {
			logger.Warn("pin code purge failed", zap.Error(err))
			return
		}
		if n > 0 {
			logger.Info("purged expired pin codes", zap.Int64("count", n))
		}
	})
	if err != nil {
		logger.Warn("cron register pin code purge failed", zap.Error(err))
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
