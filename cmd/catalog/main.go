package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	pkgdb "github.com/Skotchmaster/car_export/pkg/db"
	"github.com/Skotchmaster/car_export/pkg/logging"
	middleware "github.com/Skotchmaster/car_export/pkg/middleware/auth"
	"github.com/Skotchmaster/car_export/pkg/middleware/csrf"
	loggingmw "github.com/Skotchmaster/car_export/pkg/middleware/logging"
	"github.com/Skotchmaster/car_export/pkg/tokens"

	"github.com/Skotchmaster/car_export/internal/cache"
	catalogcfg "github.com/Skotchmaster/car_export/internal/config"
	"github.com/Skotchmaster/car_export/internal/events"
	"github.com/Skotchmaster/car_export/internal/httpserver"
	"github.com/Skotchmaster/car_export/internal/models"
	"github.com/Skotchmaster/car_export/internal/repo"
	"github.com/Skotchmaster/car_export/internal/search"
	"github.com/Skotchmaster/car_export/internal/service"
	"github.com/Skotchmaster/car_export/internal/storage"
	"github.com/Skotchmaster/car_export/internal/telemetry"
)

func main() {
	catalogcfg.LoadEnv(".env")
	cfg := catalogcfg.MustCatalog()

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName:  cfg.ServiceName,
		OTLPEndpoint: cfg.OTLPEndpoint,
		Stdout:       cfg.OTelStdout,
	})
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	db, err := pkgdb.Open(openCtx, cfg.DatabaseURL, cfg.DBOptions(logger))
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("db migrate: %v", err)
	}
	gormRepo := &repo.GormRepo{DB: db}

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	var productCache service.Cache = cache.Noop{}
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedis(ctx, cache.Config{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB, TTL: cfg.CacheTTL})
		if err != nil {
			logger.Warn("cache_disabled", "reason", "redis unreachable", "error", err)
		} else {
			defer rc.Close()
			productCache = rc
		}
	}

	var publisher service.EventPublisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		producer := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaProductTopic)
		defer producer.Close()
		publisher = producer
	}

	products := &service.ProductService{Repo: gormRepo, Store: store, Cache: productCache, Events: publisher}
	if cfg.ESURL != "" {
		es, err := search.NewClient(ctx, search.Config{URL: cfg.ESURL, User: cfg.ESUser, Password: cfg.ESPassword, Index: cfg.ESIndex})
		if err != nil {
			logger.Warn("search_index_disabled", "reason", "elasticsearch unreachable", "error", err)
		} else {
			products.Search = es
		}
	}

	var contacts service.ContactStore = gormRepo
	if cfg.ContactMongoURI != "" {
		mongoStore, err := repo.NewMongoContactStore(ctx, cfg.ContactMongoURI, cfg.ContactMongoDB)
		if err != nil {
			log.Fatalf("contact store: %v", err)
		}
		defer mongoStore.Close(context.Background())
		contacts = mongoStore
	}

	issuer := tokens.Issuer{Secret: cfg.JWTSecret, Name: cfg.JWTIssuer, TTL: service.AccessTTL}
	authSvc := &service.AuthService{Repo: gormRepo, Issuer: issuer}
	if seeded, err := authSvc.SeedAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("seed admin: %v", err)
	} else if seeded {
		logger.Info("admin_seeded", "username", cfg.AdminUsername)
	}

	tokenAuth := middleware.NewTokenAuth(cfg.JWTSecret, cfg.JWTIssuer)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpserver.ErrorHandler
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.Secure())
	e.Use(echomw.CORS())
	e.Use(csrf.Middleware(csrf.Config{Secure: true, EnforceSameOrigin: true, SkipPaths: []string{"/api/auth", "/api/contact"}}))
	e.Use(echomw.BodyLimit(fmt.Sprintf("%dM", cfg.MaxUploadMB)))

	deps := &httpserver.Deps{
		Products:   &httpserver.ProductHTTP{Svc: products},
		Brands:     &httpserver.BrandHTTP{Svc: &service.BrandService{Repo: gormRepo, Store: store, Cache: productCache}},
		Categories: &httpserver.CategoryHTTP{Svc: &service.CategoryService{Repo: gormRepo, Store: store, Cache: productCache}, Placeholder: cfg.CategoryPlaceholderURL},
		Blogs:      &httpserver.BlogHTTP{Svc: &service.BlogService{Repo: gormRepo, Store: store}},
		FAQ:        &httpserver.FAQHTTP{Svc: &service.FAQService{Repo: gormRepo}, Auth: tokenAuth},
		Hero:       &httpserver.HeroHTTP{Svc: &service.HeroService{Repo: gormRepo, Store: store}},
		Contact:    &httpserver.ContactHTTP{Svc: &service.ContactService{Store: contacts}},
		Auth:       &httpserver.AuthHTTP{Svc: authSvc},
		Health:     &httpserver.HealthHTTP{DB: gormRepo},
		TokenAuth:  tokenAuth,
	}
	if cfg.StorageDriver == catalogcfg.StorageLocal {
		if u, err := url.Parse(cfg.StoragePublicURL); err == nil && u.Path != "" {
			deps.UploadsPrefix = u.Path
			deps.UploadsDir = cfg.LocalStorageDir
		}
	}
	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           otelhttp.NewHandler(e, cfg.ServiceName),
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("catalog_listening", "addr", srv.Addr, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown_failed", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracing_shutdown_failed", "error", err)
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Warn("db_close_failed", "error", err)
	}

	logger.Info("catalog_stopped")
}

func openStore(ctx context.Context, cfg *catalogcfg.Config) (storage.Store, error) {
	if cfg.StorageDriver == catalogcfg.StorageS3 {
		return storage.NewS3Store(ctx, storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			UseSSL:    cfg.S3UseSSL,
			PublicURL: cfg.StoragePublicURL,
		})
	}
	return storage.NewLocalStore(cfg.LocalStorageDir, cfg.StoragePublicURL)
}
