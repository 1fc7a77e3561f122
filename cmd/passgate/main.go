package main

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/lumenpay/passgate/adapters/authenticator"
	"github.com/lumenpay/passgate/adapters/events"
	"github.com/lumenpay/passgate/adapters/ledger"
	"github.com/lumenpay/passgate/adapters/store"
	"github.com/lumenpay/passgate/adapters/tokenizer"
	"github.com/lumenpay/passgate/config"
	"github.com/lumenpay/passgate/service"
	"github.com/lumenpay/passgate/transport/http"
)

func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	// The tokenizer key only guards the local API surface; it is
	// regenerated on every start.
	signKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		log.Fatalf("Failed to generate signing key: %v", err)
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opts)

	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{Client: redisClient},
		watermill.NewStdLogger(false, false),
	)
	if err != nil {
		log.Fatalf("Failed to create Redis publisher: %v", err)
	}

	sessions := store.NewRedisStore(redisClient)
	ledgerClient := ledger.NewClient(cfg.BackendURL)
	bridge := authenticator.NewBridge(cfg.AuthenticatorURL)
	eventPub := events.NewWatermillPublisher(publisher)
	tk := tokenizer.NewJWTTokenizer(signKey)

	authService := service.NewAuthService(ledgerClient, bridge, sessions, eventPub, log)
	transferService := service.NewTransferService(sessions, ledgerClient, bridge, eventPub, log)
	transferService.SetCeremonyTimeout(cfg.CeremonyTimeout)

	router := http.SetupRouter(authService, transferService, tk)

	log.WithField("addr", cfg.ListenAddr).Info("starting passgate")
	if err := router.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
