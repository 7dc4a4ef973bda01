package main

import (
	"context"
	"log"

	"github.com/eventhub/platform/internal/api"
	"github.com/eventhub/platform/internal/api/handler"
	"github.com/eventhub/platform/internal/core/ports"
	"github.com/eventhub/platform/internal/core/service"
	"github.com/eventhub/platform/internal/infrastructure/authclient"
	"github.com/eventhub/platform/internal/infrastructure/db/mongo"
	"github.com/eventhub/platform/internal/infrastructure/db/redis"
	"github.com/eventhub/platform/internal/pkg/config"
	"github.com/eventhub/platform/internal/pkg/token"
	"github.com/eventhub/platform/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadEvent(ctx, nil)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Pretty(), Service: "event-service"})
	if cfg.JWTSecret == "" {
		lg.Warn().Msg("JWT_PRIVATE_KEY is not set; every token will be rejected")
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		lg.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	repo := mongo.NewEventRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		lg.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	checks := map[string]handler.Check{"mongo": mongo.Ping(db)}

	var profiles ports.ProfileLookup = authclient.New(cfg.AuthServiceURL, cfg.LookupTimeout, lg)
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			lg.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer func() { _ = rdb.Close() }()
		checks["redis"] = redis.Ping(rdb)

		if cfg.ProfileCacheTTL > 0 {
			profiles = redis.NewProfileCache(rdb, profiles, cfg.ProfileCacheTTL, cfg.LookupTimeout, lg)
			lg.Info().Dur("ttl", cfg.ProfileCacheTTL).Msg("profile cache enabled")
		}
	}

	svc := service.NewEventService(repo, profiles, cfg.LookupConcurrency, lg)

	e := api.NewEventRouter(svc, api.Common{
		Verifier:    token.NewCodec(cfg.JWTSecret),
		Checks:      checks,
		CORSOrigins: cfg.CORSAllowedOrigins,
		Log:         lg,
	})

	if err := api.Run(e, ":"+cfg.Port, lg); err != nil {
		lg.Error().Err(err).Msg("server stopped")
	}
}
