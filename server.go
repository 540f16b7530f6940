package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/LexiconIndonesia/country-currency-service/common/config"
	"github.com/LexiconIndonesia/country-currency-service/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Services are the dependencies the HTTP routes are built from
type Services struct {
	Refresher handler.Refresher
	Catalog   handler.Catalog
	Reporter  handler.Reporter
	Database  handler.Pinger
	// Redis is nil when the run lock is disabled
	Redis handler.Pinger
}

type AppHttpServer struct {
	router   *chi.Mux
	cfg      config.Config
	server   *http.Server
	services Services
}

func NewAppHttpServer(cfg config.Config, services Services) (*AppHttpServer, error) {
	if services.Refresher == nil || services.Catalog == nil || services.Reporter == nil || services.Database == nil {
		return nil, errors.New("missing HTTP service dependency")
	}

	r := chi.NewRouter()

	// Basic CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// Every route is served with and without its trailing slash.
	r.Use(middleware.StripSlashes)

	// A refresh walks the whole upstream list, so the budget is generous.
	r.Use(middleware.Timeout(2 * time.Minute))

	server := &AppHttpServer{
		router:   r,
		cfg:      cfg,
		services: services,
	}
	server.setupRoute()
	return server, nil
}

func (s *AppHttpServer) setupRoute() {
	r := s.router

	// API Documentation with Swagger
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	countryHandler := handler.NewCountryHandler(s.services.Refresher, s.services.Catalog, s.services.Reporter)
	statusHandler := handler.NewStatusHandler(s.services.Reporter)
	healthHandler := handler.NewHealthHandler(s.services.Database, s.services.Redis)

	r.Mount("/countries", countryHandler.Router())
	r.Mount("/status", statusHandler.Router())
	r.Mount("/health", healthHandler.Router())
}

// Handler exposes the router, mainly for tests
func (s *AppHttpServer) Handler() http.Handler {
	return s.router
}

func (s *AppHttpServer) start() error {
	log.Info().Msg("Starting up server...")

	s.server = &http.Server{
		Addr:         s.cfg.Listen.Addr(),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// stop gracefully shuts down the server
func (s *AppHttpServer) stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
