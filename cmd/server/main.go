// Command server runs the bookstore storefront.
//
//	@title			Bookstore Storefront
//	@version		1.0
//	@description	Catalog browsing, accounts and checkout for the bookstore.
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/bookstore/storefront/internal/api"
	"github.com/bookstore/storefront/internal/api/view"
	"github.com/bookstore/storefront/internal/core/ports"
	"github.com/bookstore/storefront/internal/core/service"
	"github.com/bookstore/storefront/internal/infrastructure/catalog/googlebooks"
	"github.com/bookstore/storefront/internal/infrastructure/config"
	"github.com/bookstore/storefront/internal/infrastructure/dataset"
	mongostore "github.com/bookstore/storefront/internal/infrastructure/db/mongo"
	redisstore "github.com/bookstore/storefront/internal/infrastructure/db/redis"
	"github.com/bookstore/storefront/internal/infrastructure/db/sqlstore"
	"github.com/bookstore/storefront/internal/infrastructure/http/handlers"
	"github.com/bookstore/storefront/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "storefront",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// storage is the user and order backend selected by DB_URI.
type storage struct {
	users  ports.UserRepository
	orders ports.OrderRepository
	ping   handlers.Check
	close  func(context.Context) error
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.UsesMongo() {
		ms, err := mongostore.Open(ctx, mongostore.Config{URI: cfg.Database.URI, Database: cfg.Database.Mongo})
		if err != nil {
			return nil, err
		}
		return &storage{
			users:  ms.Users(),
			orders: ms.Orders(),
			ping:   ms.Ping,
			close:  ms.Close,
		}, nil
	}

	db, err := sqlstore.Open(ctx, cfg.Database.URI)
	if err != nil {
		return nil, err
	}
	if err := sqlstore.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &storage{
		users:  sqlstore.NewUserRepository(db),
		orders: sqlstore.NewOrderRepository(db),
		ping:   db.PingContext,
		close:  func(context.Context) error { return db.Close() },
	}, nil
}

func loadDataset(cfg *config.Config) (*dataset.Catalog, error) {
	opts := dataset.Options{Rate: cfg.Store.PriceRate, Currency: cfg.Store.PriceCurrency}
	if cfg.Store.DatasetPath != "" {
		return dataset.LoadFile(cfg.Store.DatasetPath, opts)
	}
	return dataset.LoadDefault(opts)
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	if cfg.SecretKey == config.DefaultSecretKey {
		if cfg.IsProduction() {
			log.Warn().Msg("SECRET_KEY is the development default; sessions can be forged")
		} else {
			log.Info().Msg("using development SECRET_KEY")
		}
	}

	books, err := loadDataset(cfg)
	if err != nil {
		return err
	}
	log.Info().Int("books", books.Len()).Msg("dataset loaded")

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.close(context.Background()); err != nil {
			log.Error().Err(err).Msg("close storage")
		}
	}()

	revocations, err := redisstore.Open(ctx, redisstore.Config{
		URL:      cfg.Redis.URL,
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer revocations.Close()

	catalog := googlebooks.New(googlebooks.Config{
		BaseURL: cfg.Catalog.BaseURL,
		APIKey:  cfg.Catalog.APIKey,
		Timeout: cfg.Catalog.Timeout,
	}, log.With().Str("component", "catalog").Logger())

	authService := service.NewAuthService(store.users, 0, log)
	sessionService := service.NewSessionService(store.users, revocations, cfg.SecretKey, cfg.Session.TTL, log)
	orderService := service.NewOrderService(store.orders, log)
	storefrontService := service.NewStorefrontService(catalog, books, orderService, cfg.Store.HomeSampleSize, log)

	renderer, err := view.New()
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Dependencies{
		Auth:       authService,
		Sessions:   sessionService,
		Orders:     orderService,
		Storefront: storefrontService,
		Probes: map[string]handlers.Check{
			"database": store.ping,
			"redis":    revocations.Ping,
		},
		Renderer:      renderer,
		Registerer:    prometheus.DefaultRegisterer,
		Gatherer:      prometheus.DefaultGatherer,
		SecureCookies: cfg.IsProduction(),
		AuthRateLimit: cfg.Store.AuthRateLimit,
		Logger:        log,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Dur("timeout", shutdownTimeout).Msg("shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown")
		}
		close(shutdownDone)
	}()

	log.Info().Str("addr", server.Addr).Str("env", cfg.Env).Msg("server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-shutdownDone
	return nil
}
