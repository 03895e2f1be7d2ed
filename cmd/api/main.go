package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/kamalsite/backend/api/routes"
	"github.com/kamalsite/backend/internal/cart"
	"github.com/kamalsite/backend/internal/catalog"
	"github.com/kamalsite/backend/internal/discounts"
	"github.com/kamalsite/backend/internal/likes"
	"github.com/kamalsite/backend/internal/orders"
	"github.com/kamalsite/backend/internal/sessions"
	"github.com/kamalsite/backend/pkg/auth"
	"github.com/kamalsite/backend/pkg/config"
	"github.com/kamalsite/backend/pkg/db"
	"github.com/kamalsite/backend/pkg/logger"
	"github.com/kamalsite/backend/pkg/migrate"
	"github.com/kamalsite/backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(cfg.Redis.URL)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionStore, err := sessions.NewStore(redisClient, cfg.Session.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create session store", err)
		os.Exit(1)
	}

	svcs, err := buildServices(cfg, logg, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		os.Exit(1)
	}

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, sessionStore, verifier, svcs),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func buildServices(cfg *config.Config, logg *logger.Logger, dbClient *db.Client) (routes.Services, error) {
	catalogRepo := catalog.NewRepository(dbClient.DB())
	cartRepo := cart.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())
	likesRepo := likes.NewRepository(dbClient.DB())
	discountsRepo := discounts.NewRepository(dbClient.DB())

	catalogSvc, err := catalog.NewService(catalog.ServiceParams{
		Repo:     catalogRepo,
		Logger:   logg,
		PageSize: cfg.Catalog.PageSize,
	})
	if err != nil {
		return routes.Services{}, err
	}

	catalogAdmin, err := catalog.NewAdminService(catalog.AdminServiceParams{
		Repo:   catalogRepo,
		Logger: logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	cartSvc, err := cart.NewService(cart.ServiceParams{
		Repo:     cartRepo,
		Products: catalogRepo,
		Logger:   logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	ordersSvc, err := orders.NewService(orders.ServiceParams{
		Client:   dbClient,
		Repo:     ordersRepo,
		Cart:     cartRepo,
		Products: catalogRepo,
		Logger:   logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	finalizer, err := orders.NewFinalizer(orders.FinalizerParams{
		Client: dbClient,
		Repo:   ordersRepo,
		Logger: logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	likesSvc, err := likes.NewService(likes.ServiceParams{
		Repo:     likesRepo,
		Products: catalogRepo,
		Logger:   logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	discountsSvc, err := discounts.NewService(discounts.ServiceParams{
		Repo:   discountsRepo,
		Logger: logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Catalog:      catalogSvc,
		CatalogAdmin: catalogAdmin,
		Cart:         cartSvc,
		Orders:       ordersSvc,
		Finalizer:    finalizer,
		Likes:        likesSvc,
		Discounts:    discountsSvc,
	}, nil
}
