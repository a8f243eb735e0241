package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"conferencego/config"
	_ "conferencego/docs"
	"conferencego/internal/adapters/auth"
	"conferencego/internal/adapters/email"
	"conferencego/internal/adapters/openweather"
	"conferencego/internal/adapters/pexels"
	deliveryhttp "conferencego/internal/delivery/http"
	"conferencego/internal/delivery/http/controllers"
	"conferencego/internal/delivery/http/middleware"
	"conferencego/internal/domain"
	"conferencego/internal/repository/sqlstore"
	"conferencego/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, dialect, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	// Repositories
	attendeeRepo := sqlstore.NewAttendeeRepository(db, dialect)
	mirrorRepo := sqlstore.NewConferenceVORepository(db, dialect)
	conferenceRepo := sqlstore.NewConferenceRepository(db, dialect)
	presentationRepo := sqlstore.NewPresentationRepository(db, dialect)
	statusRepo := sqlstore.NewStatusRepository(db, dialect)
	locationRepo := sqlstore.NewLocationRepository(db, dialect)
	stateRepo := sqlstore.NewStateRepository(db, dialect)

	// Adapters
	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	var photos domain.PhotoFinder
	if cfg.APIKeys.Pexels != "" {
		photos = pexels.NewPhotoFinder(httpClient, cfg.APIKeys.Pexels)
	} else {
		logger.Warn("PEXELS_API_KEY not set; locations are created without pictures")
	}
	var weather domain.WeatherFetcher
	if cfg.APIKeys.OpenWeather != "" {
		weather = openweather.NewWeatherFetcher(httpClient, cfg.APIKeys.OpenWeather)
	} else {
		logger.Warn("OPEN_WEATHER_API_KEY not set; conference details omit weather")
	}
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return err
	}
	var verifier domain.TokenVerifier
	if cfg.JWTSecret != "" {
		verifier = auth.NewJWTVerifier(cfg.JWTSecret)
	} else {
		logger.Warn("JWT_SECRET not set; write routes are unauthenticated")
	}

	// Services
	timeout := cfg.RequestTimeout
	tx := sqlstore.NewTransactor(db)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	attendeeService := services.NewAttendeeService(attendeeRepo, mirrorRepo, timeout)
	presentationService := services.NewPresentationService(presentationRepo, conferenceRepo, statusRepo, emailService, logger, timeout)
	conferenceService := services.NewConferenceService(conferenceRepo, locationRepo, mirrorRepo, tx, weather, logger, timeout)
	locationService := services.NewLocationService(locationRepo, stateRepo, conferenceRepo, mirrorRepo, tx, photos, timeout)

	// HTTP
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)

	mux := deliveryhttp.NewRouter(deliveryhttp.RouterConfig{
		Logger:        logger,
		Attendees:     controllers.NewAttendeeController(logger, attendeeService),
		Presentations: controllers.NewPresentationController(logger, presentationService),
		Conferences:   controllers.NewConferenceController(logger, conferenceService),
		Locations:     controllers.NewLocationController(logger, locationService),
		Verifier:      verifier,
		Metrics:       promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		DB:            db,
	})
	var handler http.Handler = mux
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = metrics.Middleware(handler)
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.RequestID(handler)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", "addr", server.Addr, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, stopping server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
