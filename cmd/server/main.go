package main

import (
	"context"
	"expvar"
	"log"
	"runtime"

	"github.com/swaroop-surya/chatroom/internal/hub"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/configs"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/events"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/logging"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/messaging"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/metrics"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/password"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/ratelimiter"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/repository"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/tracing"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/uploads"
	"github.com/swaroop-surya/chatroom/internal/presentation/api"
	healthHandler "github.com/swaroop-surya/chatroom/internal/presentation/handler/health"
	roomHandler "github.com/swaroop-surya/chatroom/internal/presentation/handler/rooms"
	uploadHandler "github.com/swaroop-surya/chatroom/internal/presentation/handler/uploads"
)

func main() {
	logger := logging.NewLogger(logging.NewDefaultConfig())
	logger.Init()

	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	shutdownTracer, err := tracing.InitTracer(tracing.NewDefaultConfig("chatroom"))
	if err != nil {
		logger.Warnf("tracing disabled: %v", err)
	} else {
		defer shutdownTracer(context.Background())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	roomRepository := repository.NewRoomRepository()
	messageRepository := repository.NewMessageRepository(cfg.Rooms.MessageCap)

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Messaging.Enabled {
		rabbit, err := messaging.NewRabbitMQ(cfg.Messaging.URL)
		if err != nil {
			logger.Fatalf("rabbitmq: %v", err)
		}
		defer rabbit.Close()

		publisher = events.NewAuditPublisher(rabbit)
		if err := events.NewAuditConsumer(rabbit, logger).Listen(); err != nil {
			logger.Fatalf("audit consumer: %v", err)
		}
	}

	m := metrics.New()

	h := hub.New(
		hub.Config{
			MessageTTL:    cfg.Rooms.MessageTTL,
			RoomTTL:       cfg.Rooms.RoomTTL,
			SweepInterval: cfg.Rooms.SweepInterval,
			SnakeTimer:    cfg.Games.SnakeTimer,
		},
		roomRepository,
		messageRepository,
		password.NewHasher(),
		logger,
		m,
		publisher,
	)
	go h.Run(ctx)

	if err := h.SeedLobby(ctx, cfg.Rooms.LobbyName); err != nil {
		logger.Fatalf("seed lobby: %v", err)
	}

	uploadStore, err := uploads.NewStore(cfg.Uploads.DBPath)
	if err != nil {
		logger.Fatalf("upload store: %v", err)
	}
	defer uploadStore.Close()
	if err := uploadStore.Migrate(ctx); err != nil {
		logger.Fatalf("upload store migrate: %v", err)
	}

	uploadSvc, err := uploads.NewService(uploads.Options{
		Dir:          cfg.Uploads.Dir,
		MaxSizeBytes: cfg.Uploads.MaxSizeBytes,
		AllowedMIMEs: cfg.Uploads.AllowedMIMEs,
	}, uploadStore)
	if err != nil {
		logger.Fatalf("upload service: %v", err)
	}
	go uploads.RunCleanup(ctx, uploadSvc, logger, cfg.Uploads.TTL, cfg.Uploads.SweepEvery)

	rateLimiter := ratelimiter.New(ratelimiter.Options{
		MaxRatePerSecond: cfg.RateLimiter.MaxRatePerSecond,
		MaxBurst:         cfg.RateLimiter.MaxBurst,
		CacheTTL:         cfg.RateLimiter.CacheTTL,
		SourceHeaderKey:  cfg.RateLimiter.SourceHeaderKey,
	})

	app := api.NewApplication(
		*cfg,
		roomHandler.NewHandler(h),
		healthHandler.NewHandler(),
		uploadHandler.NewHandler(uploadSvc, m, cfg.Uploads.MaxSizeBytes),
		m,
		logger,
		rateLimiter,
		cfg.Uploads.Dir,
	)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.Mount()
	if err := app.Run(mux); err != nil {
		logger.Fatalf("server error: %v", err)
	}
}
