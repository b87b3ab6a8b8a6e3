package main

import (
	"context"
	"os"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/layer-3/rangda/adapters/events"
	"github.com/layer-3/rangda/adapters/store"
	"github.com/layer-3/rangda/adapters/tokenizer"
	"github.com/layer-3/rangda/adapters/users"
	"github.com/layer-3/rangda/config"
	"github.com/layer-3/rangda/internal/keys"
	"github.com/layer-3/rangda/service"
	"github.com/layer-3/rangda/transport/http"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	signKey, err := keys.LoadOrGenerate(cfg.SigningKeyFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load signing key")
	}
	if cfg.SigningKeyFile == "" {
		log.Warn().Msg("using an ephemeral signing key, sessions will not survive restarts")
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse redis url")
	}
	redisClient := redis.NewClient(opts)

	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{Client: redisClient},
		watermill.NewStdLogger(false, false),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event publisher")
	}

	db, err := users.OpenDB(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open user database")
	}
	userStore := users.NewBunStore(db)
	if err := userStore.Migrate(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate user database")
	}

	authService := service.NewAuthService(
		userStore,
		tokenizer.NewJWTTokenizer(signKey),
		store.NewRedisStore(redisClient),
		events.NewWatermillPublisher(publisher),
		log,
	)
	authService.SetSessionTTL(cfg.SessionTTL)

	router := http.SetupRouter(authService)

	log.Info().Str("addr", cfg.ListenAddr).Msg("starting session server")
	if err := router.Run(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
