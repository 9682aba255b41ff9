package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	checkoutapp "github.com/vatid/backend/internal/application/checkout"
	"github.com/vatid/backend/internal/application/vatfield"
	"github.com/vatid/backend/internal/domain/shared/plugin"
	"github.com/vatid/backend/internal/infrastructure/cache"
	"github.com/vatid/backend/internal/infrastructure/config"
	"github.com/vatid/backend/internal/infrastructure/email"
	"github.com/vatid/backend/internal/infrastructure/logger"
	"github.com/vatid/backend/internal/infrastructure/migration"
	"github.com/vatid/backend/internal/infrastructure/persistence"
	"github.com/vatid/backend/internal/infrastructure/persistence/models"
	"github.com/vatid/backend/internal/infrastructure/render"
	"github.com/vatid/backend/internal/infrastructure/sanitize"
	"github.com/vatid/backend/internal/infrastructure/telemetry"
	"github.com/vatid/backend/internal/interfaces/http/handler"
	"github.com/vatid/backend/internal/interfaces/http/middleware"
	"github.com/vatid/backend/internal/interfaces/http/router"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting VAT ID checkout backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.Bool("debug", cfg.App.Debug),
		zap.Bool("block_checkout", cfg.Checkout.BlockEnabled),
	)

	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), 200*time.Millisecond)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	dbSystem := "postgresql"
	if cfg.Database.Driver == "sqlite" {
		dbSystem = "sqlite"
	}
	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:  cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBSystem: dbSystem,
	}, log)
	if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	if err := migrateSchema(cfg, db, log); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}

	// Order meta cache
	metaCache, err := cache.NewFactory(cfg.Cache, cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	).Create(ctx)
	if err != nil {
		log.Fatal("Failed to create order meta cache", zap.Error(err))
	}
	defer func() {
		_ = metaCache.Close()
	}()

	// Extensions
	hooks := plugin.NewManager()
	vatExt := vatfield.New(
		vatfield.WithLogger(logger.NewDebugLogger(log, cfg.App.Debug)),
		vatfield.WithSanitizer(sanitize.NewTextSanitizer()),
	)
	if err := hooks.Register(vatExt); err != nil {
		log.Fatal("Failed to register extension", zap.String("extension", vatExt.Name()), zap.Error(err))
	}

	var registry *checkoutapp.BlockFieldRegistry
	if cfg.Checkout.BlockEnabled {
		registry = checkoutapp.NewBlockFieldRegistry()
	}
	fieldService := checkoutapp.NewFieldService(hooks, registry)
	hooks.Boot(ctx, fieldService.Registrar())

	// Application services
	renderer := render.MustNewRenderer()
	orderService := checkoutapp.NewOrderService(
		persistence.NewGormOrderRepository(db.DB),
		hooks,
		renderer,
		checkoutapp.OrderServiceConfig{
			ShopName:       cfg.App.Name,
			Currency:       cfg.Checkout.Currency,
			OrderPrefix:    cfg.Checkout.OrderPrefix,
			AdminRecipient: cfg.Email.AdminRecipient,
			CacheTTL:       cfg.Cache.TTL,
		},
		checkoutapp.WithMailer(email.NewFromConfig(cfg.Email)),
		checkoutapp.WithMetaCache(metaCache),
		checkoutapp.WithOrderLogger(log),
	)

	pageContent, err := checkoutapp.LoadPageContent(cfg.Checkout.PageTemplate)
	if err != nil {
		log.Fatal("Failed to load checkout page template", zap.Error(err))
	}

	// HTTP
	gin.SetMode(gin.ReleaseMode)
	if cfg.App.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(cfg.HTTP.CORSAllowOrigins...))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	r := router.NewRouter(engine)
	pageService := checkoutapp.NewPageService(hooks, fieldService, renderer, checkoutapp.PageServiceConfig{
		CheckoutPath: cfg.Checkout.PagePath,
		ClassicPath:  r.APIPrefix() + "/checkout/classic",
		BlockPath:    r.APIPrefix() + "/checkout/block",
		Content:      pageContent,
	})

	routes := router.SetupStorefront(r, router.Handlers{
		System:     handler.NewSystemHandler(cfg.App.Name, version, db),
		Checkout:   handler.NewCheckoutHandler(fieldService, orderService),
		Orders:     handler.NewOrderHandler(orderService),
		Storefront: handler.NewStorefrontHandler(pageService, orderService),
	}, cfg.Checkout.PagePath)
	for _, route := range routes {
		log.Debug("Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

// migrateSchema brings the schema up to date when auto migration is on.
// SQLite databases are migrated from the GORM models; PostgreSQL runs the
// embedded SQL migrations on a dedicated connection.
func migrateSchema(cfg *config.Config, db *persistence.Database, log *zap.Logger) error {
	if !cfg.Database.AutoMigrate {
		return nil
	}

	if cfg.Database.Driver == "sqlite" {
		return db.DB.AutoMigrate(models.All()...)
	}

	sqlDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, log)
	if err != nil {
		_ = sqlDB.Close()
		return err
	}
	defer func() {
		_ = m.Close()
	}()
	return m.Up()
}
