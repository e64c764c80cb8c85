package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/configs"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/logging"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/metrics"
	"github.com/swaroop-surya/chatroom/internal/infrastructure/ratelimiter"
	healthHandler "github.com/swaroop-surya/chatroom/internal/presentation/handler/health"
	roomHandler "github.com/swaroop-surya/chatroom/internal/presentation/handler/rooms"
	uploadHandler "github.com/swaroop-surya/chatroom/internal/presentation/handler/uploads"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Application struct {
	config        configs.Config
	roomHandler   *roomHandler.Handler
	healthHandler *healthHandler.Handler
	uploadHandler *uploadHandler.Handler
	metrics       *metrics.Metrics
	logger        logging.Logger
	ratelimiter   ratelimiter.Limiter
	uploadDir     string
}

func NewApplication(
	config configs.Config,
	roomHandler *roomHandler.Handler,
	healthHandler *healthHandler.Handler,
	uploadHandler *uploadHandler.Handler,
	m *metrics.Metrics,
	logger logging.Logger,
	ratelimiter ratelimiter.Limiter,
	uploadDir string,
) *Application {
	return &Application{
		config:        config,
		roomHandler:   roomHandler,
		healthHandler: healthHandler,
		uploadHandler: uploadHandler,
		metrics:       m,
		logger:        logger,
		ratelimiter:   ratelimiter,
		uploadDir:     uploadDir,
	}
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(app.enableCors)

	r.Route("/api", func(r chi.Router) {
		// The websocket join route must not share the rate limiter or
		// request timeout with plain REST calls.
		r.Get("/rooms/{roomId}/join", app.roomHandler.JoinRoomHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))
			r.Use(app.rateLimiterMiddleware)

			r.Route("/rooms", func(r chi.Router) {
				r.Post("/", app.roomHandler.CreateRoomHandler)
				r.Get("/", app.roomHandler.ListChatRoomsHandler)
			})
			r.Get("/funrooms", app.roomHandler.ListFunroomsHandler)
			r.Get("/funrooms/joinable", app.roomHandler.ListJoinableFunroomsHandler)

			r.Post("/upload", app.uploadHandler.UploadHandler)

			r.Get("/health", app.healthHandler.GetHealth)
			r.Get("/healthz", app.healthHandler.GetHealth)
			r.Get("/ready", app.healthHandler.GetHealth)
			r.Get("/live", app.healthHandler.GetHealth)
		})
	})

	r.Handle("/metrics", app.metrics.Handler())

	fileServer := http.FileServer(http.Dir(app.uploadDir))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", fileServer))

	return otelhttp.NewHandler(r, "http.server")
}

func (app *Application) Run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", app.config.HTTP.Host, app.config.HTTP.Port),
		Handler:      mux,
		WriteTimeout: app.config.HTTP.WriteTimeout,
		ReadTimeout:  app.config.HTTP.ReadTimeout,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infof("signal caught: %s", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infof("server has started on %s", srv.Addr)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infof("server has stopped on %s", srv.Addr)

	return nil
}
