// Command server runs the practice hub API.
package main

import (
	"flag"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dkestel/practice-hub/internal/api"
	"github.com/dkestel/practice-hub/internal/auth"
	"github.com/dkestel/practice-hub/internal/config"
	"github.com/dkestel/practice-hub/internal/repository"
	"github.com/dkestel/practice-hub/internal/service/dailies"
	"github.com/dkestel/practice-hub/internal/service/identity"
	"github.com/dkestel/practice-hub/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.Get()

	db, err := repository.NewDB(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	userRepo := repository.NewUserRepository(db)
	aclRepo := repository.NewACLRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	var counters dailies.CounterStore
	if cfg.Dailies.CounterStore == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Database.Redis.Host, cfg.Database.Redis.Port),
			Password: cfg.Database.Redis.Password,
			DB:       cfg.Database.Redis.DB,
			PoolSize: cfg.Database.Redis.PoolSize,
		})
		counters = repository.NewRedisCounterStore(client)
		log.Info().Str("host", cfg.Database.Redis.Host).Msg("Using Redis daily counter store")
	} else {
		counters = repository.NewCounterRepository(db)
	}

	identityService := identity.NewService(userRepo, log)
	dailiesService := dailies.NewService(aclRepo, submissionRepo, counters, log)
	provider := auth.NewGithubProvider(cfg.Github.ClientID, cfg.Github.ClientSecret, cfg.Github.CallbackURL)

	handler := api.NewHandler(identityService, dailiesService, provider, log)
	router := api.NewRouter(handler, db, cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info().Str("addr", addr).Str("environment", cfg.Server.Environment).Msg("Starting server")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
