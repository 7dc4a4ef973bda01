package main

import (
	"context"
	"log"

	"github.com/eventhub/platform/internal/api"
	"github.com/eventhub/platform/internal/api/handler"
	"github.com/eventhub/platform/internal/core/service"
	"github.com/eventhub/platform/internal/infrastructure/db/postgres"
	"github.com/eventhub/platform/internal/pkg/config"
	"github.com/eventhub/platform/internal/pkg/password"
	"github.com/eventhub/platform/internal/pkg/token"
	"github.com/eventhub/platform/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadAuth(ctx, nil)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Pretty(), Service: "auth-service"})
	if cfg.JWTSecret == "" {
		lg.Warn().Msg("JWT_PRIVATE_KEY is not set; sign-in and token verification will fail")
	}

	if cfg.Postgres.Migrate {
		ran, err := postgres.Migrate(cfg.Postgres.DSN)
		if err != nil {
			lg.Fatal().Err(err).Msg("migration failed")
		}
		lg.Info().Bool("applied", ran).Msg("migrations checked")
	}

	pool, err := postgres.Connect(ctx, postgres.Config{
		DSN:      cfg.Postgres.DSN,
		MaxConns: cfg.Postgres.MaxConns,
		MinConns: cfg.Postgres.MinConns,
	})
	if err != nil {
		lg.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()

	codec := token.NewCodec(cfg.JWTSecret)
	svc := service.NewAuthService(
		postgres.NewUserRepository(pool),
		password.NewHasher(cfg.BcryptCost),
		codec,
		cfg.TokenTTL(),
		lg,
	)

	e := api.NewAuthRouter(svc, api.Common{
		Verifier:    codec,
		Checks:      map[string]handler.Check{"postgres": postgres.Ping(pool)},
		CORSOrigins: cfg.CORSAllowedOrigins,
		Log:         lg,
	})

	if err := api.Run(e, ":"+cfg.Port, lg); err != nil {
		lg.Error().Err(err).Msg("server stopped")
	}
}
